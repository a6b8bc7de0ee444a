package worker_jobs

import (
	"context"
	"time"

	"github.com/riverqueue/river"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

const RECEIPT_OCR_TIMEOUT = 2 * time.Minute

type receiptParser interface {
	ParseReceipt(ctx context.Context, imageBase64 string) (models.ReceiptOcrResult, error)
}

// ReceiptOcrWorker sends receipt images to the OCR collaborator. Receipts
// feed taste learning only, so a parse failure is counted and dropped rather
// than retried into the collaborator's rate limits.
type ReceiptOcrWorker struct {
	river.WorkerDefaults[models.ReceiptOcrJobArgs]

	ocrRepository     receiptParser
	metricsRepository pruneMetricsRepository
	executorFactory   executorFactory
}

func NewReceiptOcrWorker(
	ocrRepository receiptParser,
	metricsRepository pruneMetricsRepository,
	executorFactory executorFactory,
) *ReceiptOcrWorker {
	return &ReceiptOcrWorker{
		ocrRepository:     ocrRepository,
		metricsRepository: metricsRepository,
		executorFactory:   executorFactory,
	}
}

func (w *ReceiptOcrWorker) Timeout(job *river.Job[models.ReceiptOcrJobArgs]) time.Duration {
	return RECEIPT_OCR_TIMEOUT
}

func (w *ReceiptOcrWorker) Work(ctx context.Context, job *river.Job[models.ReceiptOcrJobArgs]) error {
	logger := utils.LoggerFromContext(ctx)

	result, err := w.ocrRepository.ParseReceipt(ctx, job.Args.ImageBase64)
	if err != nil {
		logger.WarnContext(ctx, "receipt ocr failed",
			"receipt_import_id", job.Args.ReceiptImportId, "error", err.Error())
		infra.ReceiptOcrFailuresTotal.Inc()
		if metricErr := w.metricsRepository.IncrementDailyMetric(ctx, w.executorFactory.NewExecutor(),
			models.MetricReceiptOcrFailed, 1); metricErr != nil {
			logger.WarnContext(ctx, "could not increment ocr failure metric", "error", metricErr.Error())
		}
		// Swallow the error so river does not retry a hopeless image.
		return nil
	}

	logger.InfoContext(ctx, "receipt parsed",
		"receipt_import_id", job.Args.ReceiptImportId,
		"merchant", result.Merchant,
		"items", len(result.Items))
	return nil
}
