// README: Route export store backed by Redis string keys with TTL.
package route

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"claimcipher/internal/types"
)

const exportKeyPrefix = "route:export:%s"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func exportKey(id types.ID) string {
	return fmt.Sprintf(exportKeyPrefix, string(id))
}

func (s *Store) Save(ctx context.Context, e Export, ttl time.Duration) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := s.redis.Set(ctx, exportKey(e.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save export %s: %w", e.ID, err)
	}
	return nil
}

// Get reads the export without consuming it.
func (s *Store) Get(ctx context.Context, id types.ID) (Export, error) {
	raw, err := s.redis.Get(ctx, exportKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Export{}, ErrExportNotFound
	}
	if err != nil {
		return Export{}, fmt.Errorf("get export %s: %w", id, err)
	}
	return decodeExport(id, raw)
}

// Take reads and deletes the export in one round trip; an export is consumed at most once.
func (s *Store) Take(ctx context.Context, id types.ID) (Export, error) {
	raw, err := s.redis.GetDel(ctx, exportKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Export{}, ErrExportNotFound
	}
	if err != nil {
		return Export{}, fmt.Errorf("take export %s: %w", id, err)
	}
	return decodeExport(id, raw)
}

func decodeExport(id types.ID, raw []byte) (Export, error) {
	var e Export
	if err := json.Unmarshal(raw, &e); err != nil {
		return Export{}, fmt.Errorf("decode export %s: %w", id, err)
	}
	return e, nil
}
