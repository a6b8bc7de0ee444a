package repositories

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

type Repositories struct {
	ExecutorGetter         ExecutorGetter
	DecisionOsDbRepository *DecisionOsDbRepository
	RuntimeFlagsRepository *RuntimeFlagsRepository
	TaskQueueRepository    *TaskQueueRepository
	OcrRepository          *OcrRepository
}

type Option func(*options)

type options struct {
	riverClient  *river.Client[pgx.Tx]
	ocrApiUrl    string
	ocrApiKey    string
	flagCacheTtl time.Duration
}

func WithRiverClient(client *river.Client[pgx.Tx]) Option {
	return func(o *options) {
		o.riverClient = client
	}
}

func WithOcrApi(apiUrl, apiKey string) Option {
	return func(o *options) {
		o.ocrApiUrl = apiUrl
		o.ocrApiKey = apiKey
	}
}

func WithFlagCacheTtl(ttl time.Duration) Option {
	return func(o *options) {
		o.flagCacheTtl = ttl
	}
}

func NewRepositories(pool *pgxpool.Pool, opts ...Option) Repositories {
	o := &options{
		flagCacheTtl: RuntimeFlagCacheTtl,
	}
	for _, opt := range opts {
		opt(o)
	}

	return Repositories{
		ExecutorGetter:         NewExecutorGetter(pool),
		DecisionOsDbRepository: NewDecisionOsDbRepository(),
		RuntimeFlagsRepository: NewRuntimeFlagsRepository(o.flagCacheTtl),
		TaskQueueRepository:    &TaskQueueRepository{riverClient: o.riverClient},
		OcrRepository:          NewOcrRepository(o.ocrApiUrl, o.ocrApiKey),
	}
}
