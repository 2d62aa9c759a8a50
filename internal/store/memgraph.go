package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// MemgraphStore persists titles as :Title nodes in Memgraph (or any
// Bolt-speaking Neo4j-compatible database). MERGE on the text property gives
// exact-text uniqueness.
type MemgraphStore struct {
	driver neo4j.DriverWithContext
}

func NewMemgraphStore(uri, username, password string) (*MemgraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	s := &MemgraphStore{driver: driver}
	s.buildIndices(context.Background())

	log.Info().Str("uri", uri).Msg("connected to Memgraph")
	return s, nil
}

func (s *MemgraphStore) buildIndices(ctx context.Context) {
	queries := []string{
		"CREATE INDEX ON :Title(text);",
		"CREATE INDEX ON :Title(uuid);",
	}

	for _, q := range queries {
		if _, err := s.executeQuery(ctx, q, nil); err != nil {
			// The index may already exist.
			log.Warn().Err(err).Str("query", q).Msg("failed to create index")
		}
	}
}

func (s *MemgraphStore) executeQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (s *MemgraphStore) Register(ctx context.Context, text string) (*Title, error) {
	now := time.Now().UTC()
	params := map[string]interface{}{
		"text":       text,
		"uuid":       uuid.New().String(),
		"created_at": now.Format(time.RFC3339Nano),
	}

	result, err := s.executeQuery(ctx, registerTitleQuery, params)
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, fmt.Errorf("register returned no record for title %q", text)
	}

	rec := result.Records[0]
	t := &Title{Text: text, CreatedAt: now}
	if v, ok := rec.Get("uuid"); ok {
		if id, ok := v.(string); ok {
			t.UUID = id
		}
	}
	if v, ok := rec.Get("created_at"); ok {
		if raw, ok := v.(string); ok {
			if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
				t.CreatedAt = parsed
			}
		}
	}
	return t, nil
}

func (s *MemgraphStore) List(ctx context.Context) ([]string, error) {
	result, err := s.executeQuery(ctx, listTitlesQuery, nil)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		if v, ok := rec.Get("text"); ok {
			if text, ok := v.(string); ok {
				titles = append(titles, text)
			}
		}
	}
	return titles, nil
}

func (s *MemgraphStore) Exists(ctx context.Context, text string) (bool, error) {
	result, err := s.executeQuery(ctx, titleExistsQuery, map[string]interface{}{"text": text})
	if err != nil {
		return false, err
	}
	if len(result.Records) == 0 {
		return false, nil
	}

	v, ok := result.Records[0].Get("exists")
	if !ok {
		return false, nil
	}
	exists, _ := v.(bool)
	return exists, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}
