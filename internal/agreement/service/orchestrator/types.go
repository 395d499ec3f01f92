package orchestrator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		CreateResource(ctx context.Context, r model.Resource) error
		UpdateResourceStatus(ctx context.Context, key model.ResourceKey, status model.DeploymentStatus, details map[string]any) error
		CloseResource(ctx context.Context, key model.ResourceKey) error
		Resource(ctx context.Context, key model.ResourceKey) (model.Resource, error)
		ResourcesByStatus(ctx context.Context, status model.DeploymentStatus) ([]model.Resource, error)
		DetailDocument(ctx context.Context, id string) (model.DetailDocument, error)
	}

	Metrics interface {
		ObserveTransition(state string)
		ObserveHook(hook string, err error, started time.Time)
		SetPollTasks(n int)
	}

	Registrations interface {
		Registration(providerID uint32) (provider.Registration, bool)
	}

	Hooks interface {
		provider.Hooks
	}
)
