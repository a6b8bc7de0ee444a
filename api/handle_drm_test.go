package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

// stubOverrideExecutor mimics the gate-first contract of the real usecase:
// when inactive it refuses everything without looking at the payload.
type stubOverrideExecutor struct {
	active bool
	output models.DrmOutput
	err    error
}

func (s stubOverrideExecutor) ExecuteOverride(_ context.Context, _, rawReason string) (models.DrmOutput, bool, error) {
	if !s.active {
		return models.DrmOutput{}, false, nil
	}
	if s.err != nil {
		return models.DrmOutput{}, false, s.err
	}
	reason, err := models.DrmTriggerReasonFrom(rawReason)
	if err != nil {
		return models.DrmOutput{}, false, err
	}
	output := s.output
	output.Reason = reason
	return output, true, nil
}

func newDrmTestRouter(uc overrideExecutor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/drm", handlePostDrmOverride(uc))
	return r
}

func postDrm(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/drm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandlePostDrmOverride_DisabledAlwaysAnswersNotActivated(t *testing.T) {
	router := newDrmTestRouter(stubOverrideExecutor{active: false})

	// Whatever the payload claims happened, a disabled kill switch yields
	// the same calm refusal.
	bodies := []string{
		`{"sessionId":"s1","reason":"rejection_threshold"}`,
		`{"sessionId":"s1","reason":"time_threshold"}`,
		`{"sessionId":"s1","reason":"explicit_done"}`,
		`{"sessionId":"s1","reason":"no_valid_meal"}`,
		`{"sessionId":"s1","reason":"bogus"}`,
		`{"sessionId":"s1"}`,
	}
	for _, body := range bodies {
		w := postDrm(router, body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"drmActivated":false}`, w.Body.String())
	}
}

func TestHandlePostDrmOverride_ReturnsForcedDecision(t *testing.T) {
	router := newDrmTestRouter(stubOverrideExecutor{
		active: true,
		output: models.DrmOutput{
			DecisionId:       "d1",
			Meal:             "Scrambled eggs on toast",
			EstimatedTime:    "10 min",
			Headline:         "Say no more. We've got you.",
			ExecutionPayload: models.ExecutionPayload{Steps: []string{"Whisk eggs", "Toast bread"}},
		},
	})

	w := postDrm(router, `{"sessionId":"s1","reason":"explicit_done"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		DrmActivated bool `json:"drmActivated"`
		Decision     struct {
			DecisionId       string `json:"decision_id"`
			Meal             string `json:"meal"`
			EstimatedTime    string `json:"estimated_time"`
			Headline         string `json:"headline"`
			Reason           string `json:"reason"`
			ExecutionPayload struct {
				Steps []string `json:"steps"`
			} `json:"execution_payload"`
		} `json:"decision"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.True(t, response.DrmActivated)
	assert.Equal(t, "d1", response.Decision.DecisionId)
	assert.Equal(t, "Scrambled eggs on toast", response.Decision.Meal)
	assert.Equal(t, "10 min", response.Decision.EstimatedTime)
	assert.Equal(t, "explicit_done", response.Decision.Reason)
	assert.NotEmpty(t, response.Decision.ExecutionPayload.Steps)
}

func TestHandlePostDrmOverride_RescueUnavailable(t *testing.T) {
	router := newDrmTestRouter(stubOverrideExecutor{
		active: true,
		err:    models.ErrRescueUnavailable,
	})

	w := postDrm(router, `{"sessionId":"s1","reason":"no_valid_meal"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"drmActivated":false,"status":"rescue_unavailable"}`, w.Body.String())
}

func TestHandlePostDrmOverride_UnknownReasonIsAnInternalError(t *testing.T) {
	router := newDrmTestRouter(stubOverrideExecutor{active: true})

	// The surface only speaks 200/401/500, so bad input maps to 500.
	w := postDrm(router, `{"sessionId":"s1","reason":"hungry"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
}

func TestHandlePostDrmOverride_MalformedJson(t *testing.T) {
	router := newDrmTestRouter(stubOverrideExecutor{active: true})

	w := postDrm(router, `{not json`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
}
