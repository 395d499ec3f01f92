package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

const resourceColumns = `id, contract_address, name, deployment_status, details, group_name,
       owner_address, offer_id, provider_id, is_active`

type resourceRow struct {
	ID               int64   `db:"id"`
	ContractAddress  string  `db:"contract_address"`
	Name             string  `db:"name"`
	DeploymentStatus string  `db:"deployment_status"`
	Details          jsonMap `db:"details"`
	GroupName        string  `db:"group_name"`
	OwnerAddress     string  `db:"owner_address"`
	OfferID          int64   `db:"offer_id"`
	ProviderID       int64   `db:"provider_id"`
	IsActive         bool    `db:"is_active"`
}

func (r resourceRow) toModel() model.Resource {
	return model.Resource{
		ID:               uint32(r.ID),
		ContractAddress:  common.HexToAddress(r.ContractAddress),
		Name:             r.Name,
		DeploymentStatus: model.DeploymentStatus(r.DeploymentStatus),
		Details:          map[string]any(r.Details),
		GroupName:        r.GroupName,
		OwnerAddress:     common.HexToAddress(r.OwnerAddress),
		OfferID:          uint32(r.OfferID),
		ProviderID:       uint32(r.ProviderID),
		IsActive:         r.IsActive,
	}
}

// CreateResource inserts the resource row for a newly created agreement. A row that already
// exists is overwritten only while it is still active, so a closed resource is never resurrected.
func (l *Ledger) CreateResource(ctx context.Context, r model.Resource) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("create_resource", err, start)
	}()

	groupName := r.GroupName
	if groupName == "" {
		groupName = model.DefaultGroupName
	}

	query := l.rebind(`
INSERT INTO resources (id, contract_address, name, deployment_status, details, group_name,
                       owner_address, offer_id, provider_id, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id, contract_address) DO UPDATE SET
    name = excluded.name,
    deployment_status = excluded.deployment_status,
    details = excluded.details,
    owner_address = excluded.owner_address,
    offer_id = excluded.offer_id,
    provider_id = excluded.provider_id
WHERE resources.is_active`)

	if _, err = l.db.ExecContext(ctx, query,
		int64(r.ID),
		model.AddressKey(r.ContractAddress),
		r.Name,
		string(r.DeploymentStatus),
		jsonMap(r.Details),
		groupName,
		model.AddressKey(r.OwnerAddress),
		int64(r.OfferID),
		int64(r.ProviderID),
		r.IsActive,
	); err != nil {
		return fmt.Errorf("insert resource %d: %w", r.ID, err)
	}
	return nil
}

// UpdateResourceStatus sets the deployment status and details of an active resource.
// Inactive rows are left untouched.
func (l *Ledger) UpdateResourceStatus(
	ctx context.Context,
	key model.ResourceKey,
	status model.DeploymentStatus,
	details map[string]any,
) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("update_resource_status", err, start)
	}()

	query := l.rebind(`
UPDATE resources SET deployment_status = ?, details = ?
WHERE id = ? AND contract_address = ? AND is_active`)

	if _, err = l.db.ExecContext(ctx, query,
		string(status), jsonMap(details), int64(key.ID), model.AddressKey(key.Contract),
	); err != nil {
		return fmt.Errorf("update resource %d status: %w", key.ID, err)
	}
	return nil
}

// CloseResource deactivates a resource, marks it Closed and clears its details.
func (l *Ledger) CloseResource(ctx context.Context, key model.ResourceKey) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("close_resource", err, start)
	}()

	query := l.rebind(`
UPDATE resources SET is_active = ?, deployment_status = ?, details = ?
WHERE id = ? AND contract_address = ?`)

	if _, err = l.db.ExecContext(ctx, query,
		false, string(model.DeploymentClosed), jsonMap{}, int64(key.ID), model.AddressKey(key.Contract),
	); err != nil {
		return fmt.Errorf("close resource %d: %w", key.ID, err)
	}
	return nil
}

// Resource returns a resource by its identity or ErrNotFound.
func (l *Ledger) Resource(ctx context.Context, key model.ResourceKey) (_ model.Resource, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("resource", err, start)
	}()

	query := l.rebind(`SELECT ` + resourceColumns + `
FROM resources WHERE id = ? AND contract_address = ?`)

	var row resourceRow
	if err = l.db.GetContext(ctx, &row, query, int64(key.ID), model.AddressKey(key.Contract)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Resource{}, fmt.Errorf("resource %d: %w", key.ID, ErrNotFound)
		}
		return model.Resource{}, fmt.Errorf("select resource %d: %w", key.ID, err)
	}
	return row.toModel(), nil
}

// OwnedResource returns a resource only when it belongs to owner.
func (l *Ledger) OwnedResource(ctx context.Context, key model.ResourceKey, owner common.Address) (_ model.Resource, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("owned_resource", err, start)
	}()

	query := l.rebind(`SELECT ` + resourceColumns + `
FROM resources WHERE id = ? AND contract_address = ? AND owner_address = ?`)

	var row resourceRow
	if err = l.db.GetContext(ctx, &row, query,
		int64(key.ID), model.AddressKey(key.Contract), model.AddressKey(owner),
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Resource{}, fmt.Errorf("resource %d of %s: %w", key.ID, owner.Hex(), ErrNotFound)
		}
		return model.Resource{}, fmt.Errorf("select resource %d of %s: %w", key.ID, owner.Hex(), err)
	}
	return row.toModel(), nil
}

// ResourcesOfOwner lists every resource owned by owner, ordered by contract and id.
func (l *Ledger) ResourcesOfOwner(ctx context.Context, owner common.Address) (_ []model.Resource, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("resources_of_owner", err, start)
	}()

	query := l.rebind(`SELECT ` + resourceColumns + `
FROM resources WHERE owner_address = ?
ORDER BY contract_address, id`)

	var rows []resourceRow
	if err = l.db.SelectContext(ctx, &rows, query, model.AddressKey(owner)); err != nil {
		return nil, fmt.Errorf("select resources of %s: %w", owner.Hex(), err)
	}
	return toResources(rows), nil
}

// ResourcesByStatus lists active resources in the given deployment status.
func (l *Ledger) ResourcesByStatus(ctx context.Context, status model.DeploymentStatus) (_ []model.Resource, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("resources_by_status", err, start)
	}()

	query := l.rebind(`SELECT ` + resourceColumns + `
FROM resources WHERE deployment_status = ? AND is_active
ORDER BY contract_address, id`)

	var rows []resourceRow
	if err = l.db.SelectContext(ctx, &rows, query, string(status)); err != nil {
		return nil, fmt.Errorf("select %s resources: %w", status, err)
	}
	return toResources(rows), nil
}

func toResources(rows []resourceRow) []model.Resource {
	out := make([]model.Resource, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out
}
