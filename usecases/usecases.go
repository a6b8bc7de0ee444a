package usecases

import (
	"context"
	"time"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
)

const (
	// DefaultRejectionThreshold is how many rejected suggestions it takes
	// before the decision flow recommends a rescue.
	DefaultRejectionThreshold = 3

	// DefaultDecisionTimeLimit is how long a session may run before the
	// time trigger fires.
	DefaultDecisionTimeLimit = 10 * time.Minute
)

type executorFactory interface {
	NewExecutor() repositories.Executor
	Transaction(ctx context.Context, fn func(tx repositories.Executor) error) error
}

type Usecases struct {
	Repositories repositories.Repositories

	featureFlags       infra.FeatureFlags
	fallbackConfig     models.FallbackConfig
	rejectionThreshold int
	decisionTimeLimit  time.Duration
}

type Option func(*options)

type options struct {
	featureFlags       infra.FeatureFlags
	fallbackConfig     models.FallbackConfig
	rejectionThreshold int
	decisionTimeLimit  time.Duration
}

func WithFeatureFlags(flags infra.FeatureFlags) Option {
	return func(o *options) {
		o.featureFlags = flags
	}
}

func WithFallbackConfig(cfg models.FallbackConfig) Option {
	return func(o *options) {
		o.fallbackConfig = cfg
	}
}

func WithRejectionThreshold(threshold int) Option {
	return func(o *options) {
		o.rejectionThreshold = threshold
	}
}

func WithDecisionTimeLimit(limit time.Duration) Option {
	return func(o *options) {
		o.decisionTimeLimit = limit
	}
}

func NewUsecases(repos repositories.Repositories, opts ...Option) Usecases {
	o := &options{
		fallbackConfig:     models.DefaultFallbackConfig(),
		rejectionThreshold: DefaultRejectionThreshold,
		decisionTimeLimit:  DefaultDecisionTimeLimit,
	}
	for _, opt := range opts {
		opt(o)
	}

	return Usecases{
		Repositories:       repos,
		featureFlags:       o.featureFlags,
		fallbackConfig:     o.fallbackConfig,
		rejectionThreshold: o.rejectionThreshold,
		decisionTimeLimit:  o.decisionTimeLimit,
	}
}

func (uc Usecases) NewFlagGateUsecase() FlagGateUsecase {
	return FlagGateUsecase{
		executorFactory: uc.Repositories.ExecutorGetter,
		featureFlags:    uc.featureFlags,
		runtimeFlags:    uc.Repositories.RuntimeFlagsRepository,
	}
}

func (uc Usecases) NewDecisionUsecase() DecisionUsecase {
	return DecisionUsecase{
		executorFactory:    uc.Repositories.ExecutorGetter,
		gate:               uc.NewFlagGateUsecase(),
		eventRepository:    uc.Repositories.DecisionOsDbRepository,
		sessionRepository:  uc.Repositories.DecisionOsDbRepository,
		fallbackConfig:     uc.fallbackConfig,
		rejectionThreshold: uc.rejectionThreshold,
		decisionTimeLimit:  uc.decisionTimeLimit,
	}
}

func (uc Usecases) NewDrmUsecase() DrmUsecase {
	return DrmUsecase{
		executorFactory:   uc.Repositories.ExecutorGetter,
		gate:              uc.NewFlagGateUsecase(),
		eventRepository:   uc.Repositories.DecisionOsDbRepository,
		sessionRepository: uc.Repositories.DecisionOsDbRepository,
		metricsRepository: uc.Repositories.DecisionOsDbRepository,
		fallbackConfig:    uc.fallbackConfig,
	}
}

func (uc Usecases) NewFeedbackUsecase() FeedbackUsecase {
	return FeedbackUsecase{
		executorFactory:   uc.Repositories.ExecutorGetter,
		eventRepository:   uc.Repositories.DecisionOsDbRepository,
		sessionRepository: uc.Repositories.DecisionOsDbRepository,
		metricsRepository: uc.Repositories.DecisionOsDbRepository,
	}
}

func (uc Usecases) NewReceiptUsecase() ReceiptUsecase {
	return ReceiptUsecase{
		gate:      uc.NewFlagGateUsecase(),
		taskQueue: uc.Repositories.TaskQueueRepository,
	}
}
