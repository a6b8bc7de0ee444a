package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"

	"github.com/RogueScr1be/fast-food-sub005/models"
)

// TaskQueueRepository wraps the insert side of the river client. The worker
// side lives in cmd/worker.go.
type TaskQueueRepository struct {
	riverClient *river.Client[pgx.Tx]
}

func (repo *TaskQueueRepository) EnqueueReceiptOcrTask(ctx context.Context, args models.ReceiptOcrJobArgs) error {
	if repo.riverClient == nil {
		return errors.New("task queue is not configured")
	}
	_, err := repo.riverClient.Insert(ctx, args, nil)
	return errors.Wrap(err, "enqueue receipt ocr task")
}
