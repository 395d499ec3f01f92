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

type providerRow struct {
	ID              int64  `db:"id"`
	OwnerAddress    string `db:"owner_address"`
	OperatorAddress string `db:"operator_address"`
	DetailsLink     string `db:"details_link"`
}

// UpsertProvider caches a registry actor. Its detail document must already be stored.
func (l *Ledger) UpsertProvider(ctx context.Context, p model.Provider) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("upsert_provider", err, start)
	}()

	if _, err = l.DetailDocument(ctx, p.DetailsLink); err != nil {
		return fmt.Errorf("provider %d details: %w", p.ID, err)
	}

	query := l.rebind(`
INSERT INTO providers (id, owner_address, operator_address, details_link) VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    owner_address = excluded.owner_address,
    operator_address = excluded.operator_address,
    details_link = excluded.details_link`)

	if _, err = l.db.ExecContext(ctx, query,
		int64(p.ID), model.AddressKey(p.OwnerAddress), model.AddressKey(p.OperatorAddress), p.DetailsLink,
	); err != nil {
		return fmt.Errorf("upsert provider %d: %w", p.ID, err)
	}
	return nil
}

// Provider returns the cached registration of owner or ErrNotFound.
func (l *Ledger) Provider(ctx context.Context, owner common.Address) (_ model.Provider, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("provider", err, start)
	}()

	query := l.rebind(`
SELECT id, owner_address, operator_address, details_link FROM providers WHERE owner_address = ?`)

	var row providerRow
	if err = l.db.GetContext(ctx, &row, query, model.AddressKey(owner)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Provider{}, fmt.Errorf("provider %s: %w", owner.Hex(), ErrNotFound)
		}
		return model.Provider{}, fmt.Errorf("select provider %s: %w", owner.Hex(), err)
	}
	return model.Provider{
		ID:              uint32(row.ID),
		OwnerAddress:    common.HexToAddress(row.OwnerAddress),
		OperatorAddress: common.HexToAddress(row.OperatorAddress),
		DetailsLink:     row.DetailsLink,
	}, nil
}

// UpsertContract caches a tracked contract. Its detail document must already be stored.
func (l *Ledger) UpsertContract(ctx context.Context, c model.Contract) (err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("upsert_contract", err, start)
	}()

	if _, err = l.DetailDocument(ctx, c.DetailsLink); err != nil {
		return fmt.Errorf("contract %s details: %w", c.Address.Hex(), err)
	}

	query := l.rebind(`
INSERT INTO contracts (address, details_link) VALUES (?, ?)
ON CONFLICT (address) DO UPDATE SET details_link = excluded.details_link`)

	if _, err = l.db.ExecContext(ctx, query, model.AddressKey(c.Address), c.DetailsLink); err != nil {
		return fmt.Errorf("upsert contract %s: %w", c.Address.Hex(), err)
	}
	return nil
}
