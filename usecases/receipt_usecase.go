package usecases

import (
	"context"
	"encoding/base64"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type ocrGate interface {
	OcrActive(ctx context.Context) bool
}

type receiptTaskEnqueuer interface {
	EnqueueReceiptOcrTask(ctx context.Context, args models.ReceiptOcrJobArgs) error
}

// ReceiptUsecase accepts grocery receipt uploads for the taste learning
// pipeline. Parsing happens asynchronously, the endpoint only validates and
// enqueues.
type ReceiptUsecase struct {
	gate      ocrGate
	taskQueue receiptTaskEnqueuer
}

// ImportReceipt validates the upload and hands it to the OCR queue when the
// capability is on. A disabled capability or a failed enqueue degrades to the
// "stored" status rather than an error: receipts are telemetry, losing one
// must never interrupt the user.
func (uc ReceiptUsecase) ImportReceipt(ctx context.Context, householdKey, imageBase64 string) (models.ReceiptImport, error) {
	if imageBase64 == "" {
		return models.ReceiptImport{}, errors.Wrap(models.BadParameterError, "missing receipt image")
	}
	if _, err := base64.StdEncoding.DecodeString(imageBase64); err != nil {
		return models.ReceiptImport{}, errors.Wrap(models.BadParameterError, "receipt image is not valid base64")
	}

	receipt := models.ReceiptImport{
		Id:     uuid.NewString(),
		Status: models.ReceiptStatusStored,
	}

	if !uc.gate.OcrActive(ctx) {
		return receipt, nil
	}

	err := uc.taskQueue.EnqueueReceiptOcrTask(ctx, models.ReceiptOcrJobArgs{
		ReceiptImportId: receipt.Id,
		HouseholdKey:    householdKey,
		ImageBase64:     imageBase64,
	})
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not enqueue receipt ocr task",
			"receipt_import_id", receipt.Id, "error", err.Error())
		return receipt, nil
	}

	receipt.Status = models.ReceiptStatusQueued
	return receipt, nil
}
