package router

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

// specFiles are looked up in the data directory in this order.
var specFiles = []string{"spec.yaml", "spec.json", "oas.json", "oas.yaml"}

// registerOperatorRoutes is called with r.mu held.
func (r *Router) registerOperatorRoutes(operator common.Address, p Pipe) {
	p.Handle(http.MethodGet, "/spec", r.endpoint(http.MethodGet, "/spec", r.spec))
	p.Handle(http.MethodGet, "/details", r.endpoint(http.MethodGet, "/details", r.details))
	p.Handle(http.MethodGet, "/resources", r.endpoint(http.MethodGet, "/resources", r.resources(operator)))
}

func (r *Router) spec(context.Context, Request) (any, error) {
	for _, name := range specFiles {
		path := filepath.Join(r.dataDir, name)
		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				r.logger.Error("stat spec file", zap.String("path", path), zap.Error(err))
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			r.logger.Error("read spec file", zap.String("path", path), zap.Error(err))
			return nil, NotFound("OpenAPI spec file")
		}
		return string(content), nil
	}
	return nil, NotFound("OpenAPI spec file")
}

func (r *Router) details(ctx context.Context, req Request) (any, error) {
	var cids []string
	if err := json.Unmarshal(payload(req), &cids); err != nil {
		return nil, BadRequest("invalid payload: expected an array of detail file identifiers")
	}
	if err := r.validate.Var(cids, "min=1,dive,required"); err != nil {
		return nil, BadRequest("invalid payload: %v", err)
	}

	docs, err := r.ledger.DetailDocuments(ctx, cids)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, NotFound("Detail files")
	}

	contents := make([]string, 0, len(docs))
	for _, doc := range docs {
		contents = append(contents, doc.Content)
	}
	return contents, nil
}

type resourcesQuery struct {
	ID *uint32 `json:"id"`
	ContractRef
}

// resources lists the requester's resources, or returns one when both id and contract are given.
// Private detail fields are only shown to the operator itself.
func (r *Router) resources(operator common.Address) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		var q resourcesQuery
		if err := r.decode(req, &q); err != nil {
			return nil, err
		}
		reveal := req.Requester == operator

		contract, ok := q.contract()
		if q.ID == nil || !ok {
			list, err := r.ledger.ResourcesOfOwner(ctx, req.Requester)
			if err != nil {
				return nil, err
			}
			if !reveal {
				for i := range list {
					list[i].Details = model.StripPrivate(list[i].Details)
				}
			}
			return list, nil
		}

		resource, err := r.ledger.OwnedResource(ctx, model.ResourceKey{ID: *q.ID, Contract: contract}, req.Requester)
		if err != nil {
			return nil, r.notFound(err, *q.ID)
		}
		if !reveal {
			resource.Details = model.StripPrivate(resource.Details)
		}
		return resource, nil
	}
}
