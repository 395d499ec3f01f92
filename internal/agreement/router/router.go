// Package router multiplexes pipe requests of an operator between operator-level routes and
// routes of the individual providers the operator hosts.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/ledger"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

const providerIDField = "providerId"

type route struct {
	method string
	path   string
}

// Router owns the route tables of every operator pipe.
type Router struct {
	ledger   Ledger
	metrics  Metrics
	logger   *zap.Logger
	validate *validator.Validate
	dataDir  string

	mu       sync.RWMutex
	pipes    map[common.Address]Pipe
	shared   map[common.Address]map[route]struct{}
	handlers map[common.Address]map[uint32]map[route]Handler
}

// New creates a Router. dataDir holds the OpenAPI document served on /spec.
func New(ledger Ledger, metrics Metrics, logger *zap.Logger, dataDir string) *Router {
	return &Router{
		ledger:   ledger,
		metrics:  metrics,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		dataDir:  dataDir,
		pipes:    make(map[common.Address]Pipe),
		shared:   make(map[common.Address]map[route]struct{}),
		handlers: make(map[common.Address]map[uint32]map[route]Handler),
	}
}

// Bind returns the pipe of operator, creating it with newPipe on first use. A new pipe gets the
// operator routes registered before it is returned.
func (r *Router) Bind(operator common.Address, newPipe func() (Pipe, error)) (Pipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pipes[operator]; ok {
		return p, nil
	}

	p, err := newPipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe of operator %s: %w", operator.Hex(), err)
	}
	r.pipes[operator] = p
	r.registerOperatorRoutes(operator, p)

	r.logger.Info("pipe initialized", zap.String("operator", operator.Hex()))
	return p, nil
}

// OperatorRoute registers a route served directly by the operator pipe.
func (r *Router) OperatorRoute(operator common.Address, method, path string, h Handler) error {
	r.mu.RLock()
	p, ok := r.pipes[operator]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("operator %s has no pipe", operator.Hex())
	}

	p.Handle(method, path, r.endpoint(method, path, h))
	return nil
}

// ProviderRoute registers a route of one provider. Requests reach it through a route shared by
// every provider of the operator, selected by the providerId field of the request.
func (r *Router) ProviderRoute(operator common.Address, providerID uint32, method, path string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pipes[operator]
	if !ok {
		return fmt.Errorf("operator %s has no pipe", operator.Hex())
	}

	rt := route{method: method, path: path}
	byProvider, ok := r.handlers[operator]
	if !ok {
		byProvider = make(map[uint32]map[route]Handler)
		r.handlers[operator] = byProvider
	}
	routes, ok := byProvider[providerID]
	if !ok {
		routes = make(map[route]Handler)
		byProvider[providerID] = routes
	}
	routes[rt] = h

	shared, ok := r.shared[operator]
	if !ok {
		shared = make(map[route]struct{})
		r.shared[operator] = shared
	}
	if _, ok := shared[rt]; !ok {
		shared[rt] = struct{}{}
		p.Handle(method, path, r.endpoint(method, path, r.dispatch(operator, rt)))
	}
	return nil
}

func (r *Router) dispatch(operator common.Address, rt route) Handler {
	return func(ctx context.Context, req Request) (any, error) {
		providerID, err := extractProviderID(req)
		if err != nil {
			return nil, err
		}

		r.mu.RLock()
		h, ok := r.handlers[operator][providerID][rt]
		r.mu.RUnlock()
		if !ok {
			return nil, NotFound(rt.method + " " + rt.path)
		}
		return h(ctx, req)
	}
}

// extractProviderID reads providerId from the body, falling back to the params.
func extractProviderID(req Request) (uint32, error) {
	value := gjson.GetBytes(req.Body, providerIDField)
	if !value.Exists() {
		value = gjson.GetBytes(req.Params, providerIDField)
	}
	if !value.Exists() {
		return 0, &PipeError{Code: CodeNotFound, Message: `missing "providerId"`}
	}

	var (
		id  uint64
		err error
	)
	switch value.Type {
	case gjson.Number:
		id, err = strconv.ParseUint(value.Raw, 10, 32)
	case gjson.String:
		id, err = strconv.ParseUint(value.Str, 10, 32)
	default:
		err = errors.New("not a number")
	}
	if err != nil {
		return 0, BadRequest("invalid %q: %s", providerIDField, value.Raw)
	}
	return uint32(id), nil
}

func (r *Router) endpoint(method, path string, h Handler) Endpoint {
	return func(ctx context.Context, req Request) Response {
		start := time.Now()
		body, err := h(ctx, req)
		resp := r.respond(req, body, err)
		r.metrics.Observe(method, path, resp.Code, start)
		return resp
	}
}

func (r *Router) respond(req Request, body any, err error) Response {
	if err == nil {
		return Response{ID: req.ID, Code: CodeOK, Body: body}
	}

	var pipeErr *PipeError
	switch {
	case errors.As(err, &pipeErr):
		return Response{ID: req.ID, Code: pipeErr.Code, Body: ErrorBody{Error: pipeErr.Message}}
	case errors.Is(err, provider.ErrNotFound):
		return Response{ID: req.ID, Code: CodeNotFound, Body: ErrorBody{Error: err.Error()}}
	case errors.Is(err, provider.ErrInvalid):
		return Response{ID: req.ID, Code: CodeBadRequest, Body: ErrorBody{Error: err.Error()}}
	}

	r.logger.Error("pipe request failed",
		zap.String("request_id", req.ID),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.String("requester", req.Requester.Hex()),
		zap.Error(err),
	)
	return Response{ID: req.ID, Code: CodeInternal, Body: ErrorBody{Error: "internal error"}}
}

// Resolve returns the resource id of contract when it is owned by requester, still active and
// served by the provider of reg.
func (r *Router) Resolve(
	ctx context.Context,
	reg provider.Registration,
	id uint32,
	contract, requester common.Address,
) (model.Resource, error) {
	resource, err := r.ledger.OwnedResource(ctx, model.ResourceKey{ID: id, Contract: contract}, requester)
	if err != nil {
		return model.Resource{}, r.notFound(err, id)
	}
	if !resource.IsActive || resource.ProviderID != reg.Info.ID {
		return model.Resource{}, NotFound(fmt.Sprintf("Resource %d", id))
	}
	return resource, nil
}

func (r *Router) notFound(err error, id uint32) error {
	if errors.Is(err, ledger.ErrNotFound) {
		return NotFound(fmt.Sprintf("Resource %d", id))
	}
	return fmt.Errorf("resource %d: %w", id, err)
}

// decode unmarshals the body, or the params when there is no body, into dst and validates it.
func (r *Router) decode(req Request, dst any) error {
	raw := payload(req)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return BadRequest("invalid payload: %v", err)
	}
	if err := r.validate.Struct(dst); err != nil {
		return BadRequest("invalid payload: %v", err)
	}
	return nil
}

func payload(req Request) json.RawMessage {
	if body := bytes.TrimSpace(req.Body); len(body) > 0 && !bytes.Equal(body, []byte("null")) {
		return body
	}
	return bytes.TrimSpace(req.Params)
}

// ContractRef names the contract of a resource under any of its accepted aliases.
type ContractRef struct {
	ContractAddress string `json:"contractAddress" validate:"omitempty,eth_addr"`
	PT              string `json:"pt" validate:"omitempty,eth_addr"`
	PC              string `json:"pc" validate:"omitempty,eth_addr"`
}

func (c ContractRef) contract() (common.Address, bool) {
	for _, addr := range []string{c.ContractAddress, c.PT, c.PC} {
		if addr != "" {
			return common.HexToAddress(addr), true
		}
	}
	return common.Address{}, false
}
