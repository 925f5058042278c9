package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/therapy-scheduler/internal/usecase/appointment"
)

// DraftStore serializa o rascunho do lote em JSON sobre um KV.
// Cada gravação renova o TTL.
type DraftStore struct {
	kv  KV
	ttl time.Duration
}

var _ appointment.DraftStore = (*DraftStore)(nil)

func NewDraftStore(kv KV, ttl time.Duration) *DraftStore {
	return &DraftStore{kv: kv, ttl: ttl}
}

func (s *DraftStore) Load(ctx context.Context, key string) (*appointment.Draft, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrMiss) {
			return nil, appointment.ErrDraftNotFound
		}
		return nil, fmt.Errorf("load draft %s: %w", key, err)
	}

	var d appointment.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", key, err)
	}
	return &d, nil
}

func (s *DraftStore) Save(ctx context.Context, key string, d *appointment.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(raw), s.ttl)
}

func (s *DraftStore) Delete(ctx context.Context, key string) error {
	return s.kv.Del(ctx, key)
}
