// Package provider defines the capability interface a deployment implements to provision
// resources and serve vector-store requests, plus the values exchanged with it.
package provider

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/chain"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

var (
	// ErrNotFound marks hook failures caused by a missing entity (collection, record).
	ErrNotFound = errors.New("not found")
	// ErrInvalid marks hook failures caused by a request the store cannot accept.
	ErrInvalid = errors.New("invalid request")
)

// Lifecycle provisions and tears down the resource backing an agreement.
type Lifecycle interface {
	Create(ctx context.Context, agreement model.Agreement, offer model.DetailedOffer) (model.ResourceDetails, error)
	GetDetails(ctx context.Context, agreement model.Agreement, offer model.DetailedOffer, resource model.Resource) (model.ResourceDetails, error)
	Delete(ctx context.Context, agreement model.Agreement, offer model.DetailedOffer, resource model.Resource) error
}

// VectorStore serves the vector database operations exposed to resource owners.
type VectorStore interface {
	SearchInCollection(
		ctx context.Context,
		agreement model.Agreement,
		resource model.Resource,
		collection, vectorField string,
		query SearchQuery,
		options SearchOptions,
	) ([]map[string]any, error)
	Search(
		ctx context.Context,
		agreement model.Agreement,
		resource model.Resource,
		vectorField string,
		query SearchQuery,
		options SearchOptions,
	) (map[string][]map[string]any, error)
	InsertData(ctx context.Context, agreement model.Agreement, resource model.Resource, collection string, data []map[string]any) error
	DeleteData(ctx context.Context, agreement model.Agreement, resource model.Resource, collection string, conditions map[string]ConditionValue) error
	CreateCollection(ctx context.Context, agreement model.Agreement, resource model.Resource, name string, fields []Field) error
	DeleteCollection(ctx context.Context, agreement model.Agreement, resource model.Resource, name string) error
}

// Hooks is the full capability set of one deployment.
type Hooks interface {
	Lifecycle
	VectorStore
}

// Registration binds a registered network actor to its hooks and the contract it serves.
type Registration struct {
	Info   model.Provider
	Hooks  Hooks
	Source chain.AgreementSource
}
