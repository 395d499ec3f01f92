package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/ipfs/go-cid"
	"github.com/jmoiron/sqlx"
	"github.com/multiformats/go-multihash"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
)

var contentPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.Raw,
	MhType:   multihash.SHA2_256,
	MhLength: -1,
}

// ContentID returns the CIDv1 (raw, sha2-256) of content in its default base32 form.
func ContentID(content string) (string, error) {
	c, err := contentPrefix.Sum([]byte(content))
	if err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}
	return c.String(), nil
}

// SaveDetailDocuments stores documents under their content identifiers. Existing documents are
// immutable and never rewritten.
func (l *Ledger) SaveDetailDocuments(ctx context.Context, contents []string) (_ []model.DetailDocument, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("save_detail_documents", err, start)
	}()

	docs := make([]model.DetailDocument, 0, len(contents))
	for _, content := range contents {
		id, idErr := ContentID(content)
		if idErr != nil {
			return nil, idErr
		}
		docs = append(docs, model.DetailDocument{CID: id, Content: content})
	}
	if len(docs) == 0 {
		return docs, nil
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin detail documents tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := l.rebind(`INSERT INTO detail_documents (cid, content) VALUES (?, ?) ON CONFLICT (cid) DO NOTHING`)
	for _, doc := range docs {
		if _, err = tx.ExecContext(ctx, query, doc.CID, doc.Content); err != nil {
			return nil, fmt.Errorf("insert detail document %s: %w", doc.CID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit detail documents: %w", err)
	}

	for _, doc := range docs {
		l.details.Add(doc.CID, doc.Content)
	}
	return docs, nil
}

// DetailDocuments returns the stored documents among cids. Unknown identifiers are omitted.
func (l *Ledger) DetailDocuments(ctx context.Context, cids []string) (_ []model.DetailDocument, err error) {
	start := time.Now()
	defer func() {
		l.metrics.Observe("detail_documents", err, start)
	}()

	found := make(map[string]string, len(cids))
	missing := make([]string, 0, len(cids))
	for _, id := range cids {
		if content, ok := l.details.Get(id); ok {
			found[id] = content
			continue
		}
		missing = append(missing, id)
	}
	l.metrics.ObserveCache(len(found), len(missing))

	if len(missing) > 0 {
		query, args, inErr := sqlx.In(`SELECT cid, content FROM detail_documents WHERE cid IN (?)`, missing)
		if inErr != nil {
			return nil, fmt.Errorf("build detail documents query: %w", inErr)
		}

		var rows []model.DetailDocument
		if err = l.db.SelectContext(ctx, &rows, l.rebind(query), args...); err != nil {
			return nil, fmt.Errorf("select detail documents: %w", err)
		}
		for _, row := range rows {
			found[row.CID] = row.Content
			l.details.Add(row.CID, row.Content)
		}
	}

	out := make([]model.DetailDocument, 0, len(found))
	seen := make(map[string]struct{}, len(found))
	for _, id := range cids {
		content, ok := found[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, model.DetailDocument{CID: id, Content: content})
	}
	return out, nil
}

// DetailDocument returns a single document or ErrNotFound.
func (l *Ledger) DetailDocument(ctx context.Context, id string) (model.DetailDocument, error) {
	docs, err := l.DetailDocuments(ctx, []string{id})
	if err != nil {
		return model.DetailDocument{}, err
	}
	if len(docs) == 0 {
		return model.DetailDocument{}, fmt.Errorf("detail document %s: %w", id, ErrNotFound)
	}
	return docs[0], nil
}
