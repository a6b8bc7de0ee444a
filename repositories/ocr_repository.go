package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

const (
	ocrRequestTimeout = 10 * time.Second
	ocrRetryAttempts  = 3
)

// OcrRepository calls the external receipt OCR collaborator. It is only
// reached from the task queue worker, never from a request handler.
type OcrRepository struct {
	apiUrl string
	apiKey string
	client *http.Client
}

func NewOcrRepository(apiUrl, apiKey string) *OcrRepository {
	return &OcrRepository{
		apiUrl: apiUrl,
		apiKey: apiKey,
		client: &http.Client{Timeout: ocrRequestTimeout},
	}
}

type ocrRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type ocrResponse struct {
	Merchant string   `json:"merchant"`
	Total    string   `json:"total"`
	Items    []string `json:"items"`
}

func (repo *OcrRepository) ParseReceipt(ctx context.Context, imageBase64 string) (models.ReceiptOcrResult, error) {
	if repo.apiUrl == "" {
		return models.ReceiptOcrResult{}, errors.New("ocr api url is not configured")
	}

	body, err := json.Marshal(ocrRequest{ImageBase64: imageBase64})
	if err != nil {
		return models.ReceiptOcrResult{}, errors.Wrap(err, "marshal ocr request")
	}

	var parsed ocrResponse
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				repo.apiUrl, bytes.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/json")
			if repo.apiKey != "" {
				req.Header.Set("Authorization", "Bearer "+repo.apiKey)
			}

			res, err := repo.client.Do(req)
			if err != nil {
				return err
			}
			defer res.Body.Close()

			if res.StatusCode != http.StatusOK {
				return fmt.Errorf("ocr api returned status %d", res.StatusCode)
			}
			return json.NewDecoder(res.Body).Decode(&parsed)
		},
		retry.Attempts(ocrRetryAttempts),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return models.ReceiptOcrResult{}, errors.Wrap(err, "parse receipt")
	}

	return models.ReceiptOcrResult{
		Merchant: parsed.Merchant,
		Total:    parsed.Total,
		Items:    parsed.Items,
	}, nil
}
