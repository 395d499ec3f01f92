package transport

import (
	"crypto/ecdsa"
	"fmt"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/router"
)

// PipePrefix is the path under which operator pipes are mounted.
const PipePrefix = "/operators/"

// Mux routes /operators/<address> to the pipe of that operator.
type Mux struct {
	logger *zap.Logger

	mu    sync.RWMutex
	pipes map[common.Address]*HTTPPipe
}

func NewMux(logger *zap.Logger) *Mux {
	return &Mux{
		logger: logger,
		pipes:  make(map[common.Address]*HTTPPipe),
	}
}

// NewPipe creates and mounts the pipe of operator. It fails when the operator already has one.
func (m *Mux) NewPipe(operator common.Address, key *ecdsa.PrivateKey) (router.Pipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.pipes[operator]; ok {
		return nil, fmt.Errorf("pipe of operator %s already exists", operator.Hex())
	}
	p := NewHTTPPipe(operator, key, m.logger)
	m.pipes[operator] = p
	m.logger.Info("pipe mounted", zap.String("path", PipePrefix+operator.Hex()))
	return p, nil
}

func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("operator")
	if !common.IsHexAddress(raw) {
		http.NotFound(w, r)
		return
	}

	m.mu.RLock()
	p, ok := m.pipes[common.HexToAddress(raw)]
	m.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	p.ServeHTTP(w, r)
}

// Handler returns the HTTP handler of every mounted pipe, open to cross-origin callers.
func (m *Mux) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(PipePrefix+"{operator}", m)
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", SignatureHeader},
		ExposedHeaders: []string{SignatureHeader},
	}).Handler(mux)
}
