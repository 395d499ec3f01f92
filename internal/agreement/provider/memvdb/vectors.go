package memvdb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/model"
	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

// distanceField is added to every search hit.
const distanceField = "distance"

func (s *Store) CreateCollection(_ context.Context, _ model.Agreement, resource model.Resource, name string, fields []provider.Field) error {
	if name == "" {
		return fmt.Errorf("%w: collection name is empty", provider.ErrInvalid)
	}
	c, err := newCollection(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ready(resource)
	if err != nil {
		return err
	}
	if _, exists := db.collections[name]; exists {
		return fmt.Errorf("%w: collection %q already exists", provider.ErrInvalid, name)
	}
	db.collections[name] = c

	s.logger.Debug("collection created", zap.String("database", databaseName(resource)), zap.String("collection", name))
	return nil
}

func (s *Store) DeleteCollection(_ context.Context, _ model.Agreement, resource model.Resource, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ready(resource)
	if err != nil {
		return err
	}
	if _, err := db.collection(name); err != nil {
		return err
	}
	delete(db.collections, name)
	return nil
}

// InsertData stores every record or none of them.
func (s *Store) InsertData(_ context.Context, _ model.Agreement, resource model.Resource, collectionName string, data []map[string]any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no records to insert", provider.ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ready(resource)
	if err != nil {
		return err
	}
	c, err := db.collection(collectionName)
	if err != nil {
		return err
	}

	nextID := c.nextID
	seen := c.primaryKeys()
	rows := make([]map[string]any, 0, len(data))
	for i, record := range data {
		row, err := c.normalize(record, seen)
		if err != nil {
			c.nextID = nextID
			return fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	c.rows = append(c.rows, rows...)
	return nil
}

func (s *Store) DeleteData(_ context.Context, _ model.Agreement, resource model.Resource, collectionName string, conditions map[string]provider.ConditionValue) error {
	if len(conditions) == 0 {
		return fmt.Errorf("%w: at least one condition is required", provider.ErrInvalid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.ready(resource)
	if err != nil {
		return err
	}
	c, err := db.collection(collectionName)
	if err != nil {
		return err
	}
	for name := range conditions {
		if _, ok := c.byName[name]; !ok {
			return fmt.Errorf("%w: unknown field %q", provider.ErrInvalid, name)
		}
	}

	kept := make([]map[string]any, 0, len(c.rows))
	for _, row := range c.rows {
		ok, err := matchAll(row, conditions)
		if err != nil {
			return err
		}
		if !ok {
			kept = append(kept, row)
		}
	}
	c.rows = kept
	return nil
}

func (s *Store) SearchInCollection(
	_ context.Context,
	_ model.Agreement,
	resource model.Resource,
	collectionName, vectorField string,
	query provider.SearchQuery,
	options provider.SearchOptions,
) ([]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ready(resource)
	if err != nil {
		return nil, err
	}
	c, err := db.collection(collectionName)
	if err != nil {
		return nil, err
	}
	return c.search(vectorField, query, options)
}

// Search runs the query against every collection that has vectorField as a vector field.
func (s *Store) Search(
	_ context.Context,
	_ model.Agreement,
	resource model.Resource,
	vectorField string,
	query provider.SearchQuery,
	options provider.SearchOptions,
) (map[string][]map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.ready(resource)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]map[string]any)
	for name, c := range db.collections {
		f, ok := c.byName[vectorField]
		if !ok || f.Type != provider.FieldVector {
			continue
		}
		hits, err := c.search(vectorField, query, options)
		if err != nil {
			return nil, fmt.Errorf("collection %q: %w", name, err)
		}
		out[name] = hits
	}
	return out, nil
}

type hit struct {
	row      map[string]any
	distance float64
}

func (c *collection) search(vectorField string, query provider.SearchQuery, options provider.SearchOptions) ([]map[string]any, error) {
	f, ok := c.byName[vectorField]
	if !ok || f.Type != provider.FieldVector {
		return nil, fmt.Errorf("%w: %q is not a vector field", provider.ErrInvalid, vectorField)
	}
	limit := defaultLimit
	if options.Limit != nil {
		limit = *options.Limit
	}

	var hits []hit
	if query.Kind == provider.QueryText {
		hits = c.textHits(query.Text, options.SearchFields)
	} else {
		vec, err := query.Vector()
		if err != nil {
			return nil, err
		}
		if len(vec) != dimension(f) {
			return nil, fmt.Errorf("%w: query has %d dimensions, field %q has %d", provider.ErrInvalid, len(vec), vectorField, dimension(f))
		}
		metric, err := distanceFunc(options.MetricType)
		if err != nil {
			return nil, err
		}
		for _, row := range c.rows {
			stored, _ := row[vectorField].([]float64)
			hits = append(hits, hit{row: row, distance: metric(vec, stored)})
		}
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })
	}

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		out = append(out, c.project(h, options.SearchFields))
	}
	return out, nil
}

// textHits matches the text case-insensitively against searchFields, or every String field.
func (c *collection) textHits(text string, searchFields []string) []hit {
	fields := searchFields
	if len(fields) == 0 {
		for _, f := range c.fields {
			if f.Type == provider.FieldString {
				fields = append(fields, f.Name)
			}
		}
	}
	needle := strings.ToLower(text)

	var hits []hit
	for _, row := range c.rows {
		for _, name := range fields {
			if v, ok := row[name].(string); ok && strings.Contains(strings.ToLower(v), needle) {
				hits = append(hits, hit{row: row})
				break
			}
		}
	}
	return hits
}

// project copies the hit without vector fields, limited to outputFields when given.
func (c *collection) project(h hit, outputFields []string) map[string]any {
	out := make(map[string]any, len(h.row)+1)
	if len(outputFields) > 0 {
		for _, name := range outputFields {
			if v, ok := h.row[name]; ok {
				out[name] = v
			}
		}
	} else {
		for name, v := range h.row {
			if c.byName[name].Type == provider.FieldVector {
				continue
			}
			out[name] = v
		}
	}
	out[distanceField] = h.distance
	return out
}
