package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/shopstack/shopstack/internal/models"
)

const ProductIndex = "products"

// Service wraps the elasticsearch product index. A nil Service (search not
// configured) is a valid receiver for the indexing methods, which then no-op.
type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func NewService(es *elasticsearch.Client) *Service {
	if es == nil {
		return nil
	}
	return &Service{ES: es, Index: ProductIndex}
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

func (s *Service) IndexProduct(ctx context.Context, p *models.Product) error {
	if s == nil {
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}

	res, err := s.ES.Index(
		s.Index,
		strings.NewReader(string(data)),
		s.ES.Index.WithDocumentID(p.ID),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index product: %s", res.Status())
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if s == nil {
		return nil
	}

	res, err := s.ES.Delete(
		s.Index,
		id,
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete product from index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product from index: %s", res.Status())
	}
	return nil
}
