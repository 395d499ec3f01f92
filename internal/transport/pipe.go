// Package transport exposes operator pipes over HTTP and serves the health listeners.
package transport

import (
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
)

const (
	maxRequestBytes = 4 << 20

	// RequestWindow is how far a request timestamp may lie from the pipe's clock.
	RequestWindow = 5 * time.Minute

	replayCacheSize = 1 << 16
)

var (
	errExpiredRequest  = errors.New("request expired")
	errReplayedRequest = errors.New("request replayed")
)

type routeKey struct {
	method string
	path   string
}

// HTTPPipe serves the routes of one operator. Requests are JSON envelopes signed by the
// requester; responses are signed with the operator key. A request is accepted once per
// requester and id, and only while its timestamp is within RequestWindow.
type HTTPPipe struct {
	operator common.Address
	key      *ecdsa.PrivateKey
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.RWMutex
	routes map[routeKey]router.Endpoint

	seenMu sync.Mutex
	seen   *expirable.LRU[string, struct{}]
}

func NewHTTPPipe(operator common.Address, key *ecdsa.PrivateKey, logger *zap.Logger) *HTTPPipe {
	return &HTTPPipe{
		operator: operator,
		key:      key,
		logger:   logger.With(zap.String("operator", operator.Hex())),
		now:      time.Now,
		routes:   make(map[routeKey]router.Endpoint),
		// an id must stay remembered as long as its timestamp can pass the window check
		seen: expirable.NewLRU[string, struct{}](replayCacheSize, nil, 2*RequestWindow),
	}
}

// Handle implements router.Pipe. A later registration of the same route replaces the earlier one.
func (p *HTTPPipe) Handle(method, path string, endpoint router.Endpoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.routes[routeKey{method: strings.ToUpper(method), path: path}] = endpoint
}

func (p *HTTPPipe) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		http.Error(w, "read request", http.StatusBadRequest)
		return
	}

	var req router.Request
	if err := json.Unmarshal(raw, &req); err != nil || req.ID == "" {
		p.reply(w, router.Response{ID: req.ID, Code: router.CodeBadRequest, Body: router.ErrorBody{Error: "malformed request"}})
		return
	}

	requester, err := Recover(r.Header.Get(SignatureHeader), RequestDigest(req))
	if err != nil {
		p.reply(w, router.Response{ID: req.ID, Code: router.CodeUnauthorized, Body: router.ErrorBody{Error: "unauthorized"}})
		return
	}
	if err := p.admit(requester, req); err != nil {
		p.logger.Debug("request rejected",
			zap.String("id", req.ID), zap.String("requester", requester.Hex()), zap.Error(err))
		p.reply(w, router.Response{ID: req.ID, Code: router.CodeUnauthorized, Body: router.ErrorBody{Error: err.Error()}})
		return
	}
	req.Requester = requester
	req.Method = strings.ToUpper(req.Method)

	p.mu.RLock()
	endpoint, ok := p.routes[routeKey{method: req.Method, path: req.Path}]
	p.mu.RUnlock()
	if !ok {
		p.reply(w, router.Response{
			ID:   req.ID,
			Code: router.CodeNotFound,
			Body: router.ErrorBody{Error: fmt.Sprintf("%s %s not found", req.Method, req.Path)},
		})
		return
	}

	resp := endpoint(r.Context(), req)
	resp.ID = req.ID
	p.reply(w, resp)
}

// admit rejects requests outside the time window and ids the requester already used.
func (p *HTTPPipe) admit(requester common.Address, req router.Request) error {
	age := p.now().Sub(time.UnixMilli(req.Timestamp))
	if age > RequestWindow || age < -RequestWindow {
		return errExpiredRequest
	}

	key := requester.Hex() + "/" + req.ID
	p.seenMu.Lock()
	defer p.seenMu.Unlock()
	if _, ok := p.seen.Get(key); ok {
		return errReplayedRequest
	}
	p.seen.Add(key, struct{}{})
	return nil
}

func (p *HTTPPipe) reply(w http.ResponseWriter, resp router.Response) {
	body, err := json.Marshal(resp.Body)
	if err != nil {
		p.logger.Error("encode response body", zap.String("id", resp.ID), zap.Error(err))
		resp = router.Response{ID: resp.ID, Code: router.CodeInternal, Body: router.ErrorBody{Error: "internal error"}}
		body, _ = json.Marshal(resp.Body)
	}

	signature, err := Sign(p.key, ResponseDigest(resp.ID, resp.Code, body))
	if err != nil {
		p.logger.Error("sign response", zap.String("id", resp.ID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(SignatureHeader, signature)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(envelope{ID: resp.ID, Code: resp.Code, Body: body}); err != nil {
		p.logger.Debug("write response", zap.Error(err))
	}
}

type envelope struct {
	ID   string          `json:"id"`
	Code int             `json:"code"`
	Body json.RawMessage `json:"body"`
}
