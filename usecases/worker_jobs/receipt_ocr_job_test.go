package worker_jobs

import (
	"context"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

type stubOcr struct {
	result models.ReceiptOcrResult
	err    error
}

func (s stubOcr) ParseReceipt(context.Context, string) (models.ReceiptOcrResult, error) {
	return s.result, s.err
}

func newOcrJob() *river.Job[models.ReceiptOcrJobArgs] {
	return &river.Job[models.ReceiptOcrJobArgs]{
		JobRow: &rivertype.JobRow{},
		Args: models.ReceiptOcrJobArgs{
			ReceiptImportId: "receipt-1",
			HouseholdKey:    "household-1",
			ImageBase64:     "aGVsbG8=",
		},
	}
}

func TestReceiptOcrWorker_ParsesReceipt(t *testing.T) {
	metrics := &fakeMetricsRepository{}
	worker := NewReceiptOcrWorker(
		stubOcr{result: models.ReceiptOcrResult{Merchant: "corner store", Items: []string{"milk"}}},
		metrics, stubExecutorFactory{})

	require.NoError(t, worker.Work(context.Background(), newOcrJob()))
	assert.Zero(t, metrics.counts[models.MetricReceiptOcrFailed])
}

func TestReceiptOcrWorker_FailureIsCountedNotRetried(t *testing.T) {
	metrics := &fakeMetricsRepository{}
	worker := NewReceiptOcrWorker(stubOcr{err: assert.AnError}, metrics, stubExecutorFactory{})

	// No error back to river: a hopeless image must not loop in the queue.
	require.NoError(t, worker.Work(context.Background(), newOcrJob()))
	assert.Equal(t, int64(1), metrics.counts[models.MetricReceiptOcrFailed])
}
