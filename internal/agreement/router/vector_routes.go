package router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

// ResourceRef identifies the resource a provider request operates on.
type ResourceRef struct {
	ID uint32 `json:"id" validate:"required"`
	ContractRef
}

type collectionRequest struct {
	ResourceRef
	Name   string           `json:"name" validate:"required"`
	Fields []provider.Field `json:"fields" validate:"required,min=1,dive"`
}

type dropCollectionRequest struct {
	ResourceRef
	Name string `json:"name" validate:"required"`
}

type searchInCollectionRequest struct {
	ResourceRef
	Collection  string                 `json:"collection" validate:"required"`
	VectorField string                 `json:"vectorField" validate:"required"`
	Query       provider.SearchQuery   `json:"query"`
	Options     provider.SearchOptions `json:"options"`
}

type searchRequest struct {
	ResourceRef
	VectorField string                 `json:"vectorField" validate:"required"`
	Query       provider.SearchQuery   `json:"query"`
	Options     provider.SearchOptions `json:"options"`
}

type insertDataRequest struct {
	ResourceRef
	Collection string           `json:"collection" validate:"required"`
	Data       []map[string]any `json:"data" validate:"required,min=1"`
}

type deleteDataRequest struct {
	ResourceRef
	Collection string                             `json:"collection" validate:"required"`
	Conditions map[string]provider.ConditionValue `json:"conditions" validate:"required,min=1"`
}

// target is a resolved resource with the agreement backing it.
type target struct {
	agreement model.Agreement
	resource  model.Resource
}

// RegisterProvider registers the vector store routes of reg on its operator pipe.
func (r *Router) RegisterProvider(reg provider.Registration) error {
	routes := []struct {
		method string
		path   string
		h      Handler
	}{
		{http.MethodPost, "/collection", r.createCollection(reg)},
		{http.MethodDelete, "/collection", r.deleteCollection(reg)},
		{http.MethodPost, "/searchInCollection", r.searchInCollection(reg)},
		{http.MethodPost, "/search", r.search(reg)},
		{http.MethodPost, "/data", r.insertData(reg)},
		{http.MethodDelete, "/data", r.deleteData(reg)},
	}
	for _, rt := range routes {
		if err := r.ProviderRoute(reg.Info.OperatorAddress, reg.Info.ID, rt.method, rt.path, rt.h); err != nil {
			return fmt.Errorf("register %s %s of provider %d: %w", rt.method, rt.path, reg.Info.ID, err)
		}
	}
	return nil
}

func (r *Router) target(ctx context.Context, reg provider.Registration, req Request, ref ResourceRef) (target, error) {
	contract, ok := ref.contract()
	if !ok {
		return target{}, BadRequest(`one of "contractAddress", "pt" or "pc" is required`)
	}
	resource, err := r.Resolve(ctx, reg, ref.ID, contract, req.Requester)
	if err != nil {
		return target{}, err
	}
	agreement, err := reg.Source.Agreement(ctx, resource.ID)
	if err != nil {
		return target{}, fmt.Errorf("get agreement %d: %w", resource.ID, err)
	}
	return target{agreement: agreement, resource: resource}, nil
}

func (r *Router) createCollection(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in collectionRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return nil, reg.Hooks.CreateCollection(ctx, t.agreement, t.resource, in.Name, in.Fields)
	}
}

func (r *Router) deleteCollection(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in dropCollectionRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return nil, reg.Hooks.DeleteCollection(ctx, t.agreement, t.resource, in.Name)
	}
}

func (r *Router) searchInCollection(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in searchInCollectionRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		if in.Query.Kind == 0 {
			return nil, BadRequest(`"query" is required`)
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return reg.Hooks.SearchInCollection(ctx, t.agreement, t.resource, in.Collection, in.VectorField, in.Query, in.Options)
	}
}

func (r *Router) search(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in searchRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		if in.Query.Kind == 0 {
			return nil, BadRequest(`"query" is required`)
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return reg.Hooks.Search(ctx, t.agreement, t.resource, in.VectorField, in.Query, in.Options)
	}
}

func (r *Router) insertData(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in insertDataRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return nil, reg.Hooks.InsertData(ctx, t.agreement, t.resource, in.Collection, in.Data)
	}
}

func (r *Router) deleteData(reg provider.Registration) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var in deleteDataRequest
		if err := r.decode(req, &in); err != nil {
			return nil, err
		}
		t, err := r.target(ctx, reg, req, in.ResourceRef)
		if err != nil {
			return nil, err
		}
		return nil, reg.Hooks.DeleteData(ctx, t.agreement, t.resource, in.Collection, in.Conditions)
	}
}
