// Package memvdb is an in-process vector database deployment. Each agreement gets its own
// database holding named collections of typed records.
package memvdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

const (
	detailDatabase    = "database"
	detailEndpoint    = "endpoint"
	detailCredentials = model.PrivateFieldPrefix + "credentials"

	defaultLimit = 10
)

// Config tunes the store.
type Config struct {
	// Endpoint is reported to resource owners in resource details.
	Endpoint string
	// ProvisionDelay is how long a new database stays in Deploying. Zero means immediately Running.
	ProvisionDelay time.Duration
}

// Store implements provider.Hooks in memory.
type Store struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	databases map[string]*database
}

type database struct {
	readyAt     time.Time
	username    string
	password    string
	collections map[string]*collection
}

// New creates an empty store.
func New(cfg Config, logger *zap.Logger) *Store {
	return &Store{
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		databases: make(map[string]*database),
	}
}

var _ provider.Hooks = (*Store)(nil)

func (s *Store) Create(_ context.Context, agreement model.Agreement, offer model.DetailedOffer) (model.ResourceDetails, error) {
	name := "vdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	db := &database{
		readyAt:     s.now().Add(s.cfg.ProvisionDelay),
		username:    fmt.Sprintf("user_%d", agreement.ID),
		password:    uuid.NewString(),
		collections: make(map[string]*collection),
	}

	s.mu.Lock()
	s.databases[name] = db
	s.mu.Unlock()

	s.logger.Info("database created",
		zap.String("database", name),
		zap.Uint32("agreement_id", agreement.ID),
		zap.Uint32("offer_id", offer.ID),
	)

	status := model.DeploymentDeploying
	if s.cfg.ProvisionDelay <= 0 {
		status = model.DeploymentRunning
	}
	return model.ResourceDetails{Status: status, Fields: s.fields(name, db)}, nil
}

func (s *Store) GetDetails(_ context.Context, _ model.Agreement, _ model.DetailedOffer, resource model.Resource) (model.ResourceDetails, error) {
	name := databaseName(resource)

	s.mu.RLock()
	db, ok := s.databases[name]
	s.mu.RUnlock()
	if !ok {
		return model.ResourceDetails{}, fmt.Errorf("database %q: %w", name, provider.ErrNotFound)
	}

	status := model.DeploymentDeploying
	if !s.now().Before(db.readyAt) {
		status = model.DeploymentRunning
	}
	return model.ResourceDetails{Status: status, Fields: s.fields(name, db)}, nil
}

func (s *Store) Delete(_ context.Context, _ model.Agreement, _ model.DetailedOffer, resource model.Resource) error {
	name := databaseName(resource)

	s.mu.Lock()
	_, ok := s.databases[name]
	delete(s.databases, name)
	s.mu.Unlock()

	if ok {
		s.logger.Info("database dropped", zap.String("database", name), zap.Uint32("resource_id", resource.ID))
	}
	return nil
}

func (s *Store) fields(name string, db *database) map[string]any {
	return map[string]any{
		detailDatabase: name,
		detailEndpoint: s.cfg.Endpoint,
		detailCredentials: map[string]any{
			"username": db.username,
			"password": db.password,
		},
	}
}

func databaseName(resource model.Resource) string {
	name, _ := resource.Details[detailDatabase].(string)
	return name
}

// ready returns the database of a running resource. Callers must hold s.mu.
func (s *Store) ready(resource model.Resource) (*database, error) {
	name := databaseName(resource)
	db, ok := s.databases[name]
	if !ok {
		return nil, fmt.Errorf("database: %w", provider.ErrNotFound)
	}
	if s.now().Before(db.readyAt) {
		return nil, fmt.Errorf("%w: database %q is still deploying", provider.ErrInvalid, name)
	}
	return db, nil
}

func (db *database) collection(name string) (*collection, error) {
	c, ok := db.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", name, provider.ErrNotFound)
	}
	return c, nil
}
