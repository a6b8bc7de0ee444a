package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RogueScr1be/fast-food-sub005/usecases"
)

func addRoutes(r *gin.Engine, auth Authentication, uc usecases.Usecases) {
	r.GET("/liveness", handleLivenessProbe)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router := r.Use(auth.Middleware)

	router.POST("/decision", handlePostDecision(uc.NewDecisionUsecase()))
	router.POST("/drm", handlePostDrmOverride(uc.NewDrmUsecase()))
	router.POST("/feedback", handlePostFeedback(uc.NewFeedbackUsecase()))
	router.POST("/receipt/import", handlePostReceiptImport(uc.NewReceiptUsecase()))
}
