// Package search wraps the optional Elasticsearch backend for catalog
// queries. Without ELASTICSEARCH_HOST set the service reports not
// configured and callers fall back to database matching.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"storefront.GO/catalog"
)

// ErrNotConfigured reports that no Elasticsearch host is set.
var ErrNotConfigured = errors.New("search: elasticsearch not configured")

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton search service.
func GetService() *Service {
	serviceOnce.Do(func() {
		serviceInstance = NewService()
	})
	return serviceInstance
}

type Service struct {
	client *elasticsearch.Client
	index  string
}

// NewService builds a service from ELASTICSEARCH_HOST and
// ELASTICSEARCH_INDEX. Without a host the client stays nil.
func NewService() *Service {
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "storefront_products"
	}
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return &Service{index: index}
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		return &Service{index: index}
	}
	return &Service{client: client, index: index}
}

// Enabled reports whether an Elasticsearch client is configured.
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Search returns matching product ids, best match first.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	if limit <= 0 {
		limit = 20
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name^3", "product_id^2", "path"},
			},
		},
	}
	bodyBytes, _ := json.Marshal(body)

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(bodyBytes)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search: elasticsearch error: %s", res.String())
	}

	var esResp struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		if id, ok := hit.Source["product_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// IndexAll pushes one document per product into the index.
func (s *Service) IndexAll(ctx context.Context, products []catalog.Product) error {
	if s.client == nil {
		return ErrNotConfigured
	}
	for _, p := range products {
		doc := map[string]interface{}{
			"product_id": p.ID,
			"name":       p.Name,
			"path":       p.Path,
		}
		b, _ := json.Marshal(doc)
		res, err := s.client.Index(
			s.index,
			bytes.NewReader(b),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithDocumentID(p.ID),
		)
		if err != nil {
			return err
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("search: index %s: %s", p.ID, res.Status())
		}
	}
	return nil
}
