package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// QueryKind tells which variant a SearchQuery holds.
type QueryKind uint8

const (
	QueryEmbeddings QueryKind = iota + 1
	QueryText
)

// SearchQuery is either a list of embeddings or a free-text query.
type SearchQuery struct {
	Kind       QueryKind
	Embeddings []any
	Text       string
}

// EmbeddingsQuery builds an embeddings search query.
func EmbeddingsQuery(embeddings ...any) SearchQuery {
	return SearchQuery{Kind: QueryEmbeddings, Embeddings: embeddings}
}

// TextQuery builds a free-text search query.
func TextQuery(text string) SearchQuery {
	return SearchQuery{Kind: QueryText, Text: text}
}

// Vector returns the query as a single numeric vector. A nested list uses its first element.
func (q SearchQuery) Vector() ([]float64, error) {
	if q.Kind != QueryEmbeddings || len(q.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: embeddings query required", ErrInvalid)
	}
	items := q.Embeddings
	if nested, ok := items[0].([]any); ok {
		items = nested
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		v, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: embedding %d is %T, not a number", ErrInvalid, i, item)
		}
		out = append(out, v)
	}
	return out, nil
}

func (q *SearchQuery) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty query")
	}
	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*q = TextQuery(text)
		return nil
	case '[':
		var embeddings []any
		if err := json.Unmarshal(data, &embeddings); err != nil {
			return err
		}
		*q = EmbeddingsQuery(embeddings...)
		return nil
	default:
		return fmt.Errorf("query must be an array of embeddings or a string")
	}
}

func (q SearchQuery) MarshalJSON() ([]byte, error) {
	if q.Kind == QueryText {
		return json.Marshal(q.Text)
	}
	if q.Embeddings == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q.Embeddings)
}

// MetricType selects the distance function of a vector search.
type MetricType string

const (
	MetricL2      MetricType = "l2"
	MetricIP      MetricType = "ip"
	MetricCosine  MetricType = "cosine"
	MetricJaccard MetricType = "jaccard"
	MetricHamming MetricType = "hamming"
)

// SearchOptions tunes a search request.
type SearchOptions struct {
	Limit        *int       `json:"limit,omitempty" validate:"omitempty,gt=0"`
	MetricType   MetricType `json:"metricType,omitempty" validate:"omitempty,oneof=l2 ip cosine jaccard hamming"`
	SearchFields []string   `json:"searchFields,omitempty"`
}
