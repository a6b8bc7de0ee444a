package usecases

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/RogueScr1be/fast-food-sub005/infra"
	"github.com/RogueScr1be/fast-food-sub005/models"
	"github.com/RogueScr1be/fast-food-sub005/repositories"
	"github.com/RogueScr1be/fast-food-sub005/utils"
)

type runtimeFlagReader interface {
	GetRuntimeFlag(ctx context.Context, exec repositories.Executor, key string) (models.RuntimeFlag, error)
}

// FlagGateUsecase combines the environment flag snapshot with the runtime
// kill switches stored in the database. The environment decides what a
// deployment may do, the runtime_flags rows let ops turn a capability off
// without a redeploy.
type FlagGateUsecase struct {
	executorFactory executorFactory
	featureFlags    infra.FeatureFlags
	runtimeFlags    runtimeFlagReader
}

// DrmActive reports whether forced fallback decisions may be served. The
// environment gate is consulted first; a runtime row can then only narrow
// the answer. A missing row means no runtime override, and a read error
// fails closed.
func (uc FlagGateUsecase) DrmActive(ctx context.Context) bool {
	return uc.capabilityActive(ctx, uc.featureFlags.IsDrmEnabled(), models.RuntimeFlagDrm)
}

// OcrActive reports whether receipt images may be sent to the OCR
// collaborator.
func (uc FlagGateUsecase) OcrActive(ctx context.Context) bool {
	return uc.capabilityActive(ctx, uc.featureFlags.IsOcrEnabled(), models.RuntimeFlagOcr)
}

func (uc FlagGateUsecase) capabilityActive(ctx context.Context, envEnabled bool, runtimeKey string) bool {
	if !envEnabled {
		return false
	}

	flag, err := uc.runtimeFlags.GetRuntimeFlag(ctx, uc.executorFactory.NewExecutor(), runtimeKey)
	if err != nil {
		if errors.Is(err, models.NotFoundError) {
			return true
		}
		utils.LoggerFromContext(ctx).WarnContext(ctx,
			"could not read runtime flag, failing closed",
			"flag", runtimeKey, "error", err.Error())
		return false
	}
	return flag.Enabled
}
