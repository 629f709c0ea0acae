// Package storage indexes harvested catalog records into Elasticsearch so
// the marketplace can search them.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// ElasticsearchStorage implements record indexing for the harvester.
type ElasticsearchStorage struct {
	client *es.Client
	index  string
	log    logger.Interface
}

// NewElasticsearchStorage creates an Elasticsearch storage instance from
// configuration.
func NewElasticsearchStorage(cfg config.ElasticsearchConfig, log logger.Interface) (*ElasticsearchStorage, error) {
	if log == nil {
		log = logger.NewNoOp()
	}

	client, err := es.NewClient(es.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &ElasticsearchStorage{client: client, index: cfg.IndexName, log: log}, nil
}

// TestConnection verifies the cluster is reachable.
func (s *ElasticsearchStorage) TestConnection(ctx context.Context) error {
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connect to elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch error response: %s", res.String())
	}

	return nil
}

// BulkIndexRecords indexes every record in the result set, keyed by skill
// name.
func (s *ElasticsearchStorage) BulkIndexRecords(ctx context.Context, results *domain.ResultSet) error {
	if results.Len() == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, name := range results.Names() {
		record, _ := results.Get(name)

		meta := map[string]any{
			"index": map[string]any{
				"_index": s.index,
				"_id":    name,
			},
		}

		if err := json.NewEncoder(&buf).Encode(meta); err != nil {
			return fmt.Errorf("encode bulk meta for %q: %w", name, err)
		}
		if err := json.NewEncoder(&buf).Encode(record); err != nil {
			return fmt.Errorf("encode record %q: %w", name, err)
		}
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("bulk request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing error: %s", res.String())
	}

	s.log.Info("Records indexed", "index", s.index, "count", results.Len())

	return nil
}
