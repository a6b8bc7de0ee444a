package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/RogueScr1be/fast-food-sub005/dto"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type receiptImporter interface {
	ImportReceipt(ctx context.Context, householdKey, imageBase64 string) (models.ReceiptImport, error)
}

func handlePostReceiptImport(uc receiptImporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.ReceiptImportBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		creds, _ := utils.CredentialsFromCtx(ctx)

		receipt, err := uc.ImportReceipt(ctx, creds.HouseholdKey, body.ImageBase64)
		if presentError(c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptReceiptImportResponse(receipt))
	}
}
