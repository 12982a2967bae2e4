package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"smart_plant/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisPurgeStore keeps pending purge tickets in Redis with a TTL.
type RedisPurgeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPurgeStore(client *redis.Client, ttl time.Duration) *RedisPurgeStore {
	return &RedisPurgeStore{client: client, ttl: ttl}
}

var _ PurgeTicketStore = (*RedisPurgeStore)(nil)

func purgeTicketKey(id string) string {
	return fmt.Sprintf("smart_plant:purge:%s", id)
}

func (s *RedisPurgeStore) Save(ctx context.Context, t models.PurgeTicket) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, purgeTicketKey(t.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store purge ticket %s: %w", t.ID, err)
	}
	return nil
}

// Take atomically reads and deletes the ticket so it can only be confirmed once.
func (s *RedisPurgeStore) Take(ctx context.Context, id string) (*models.PurgeTicket, error) {
	raw, err := s.client.GetDel(ctx, purgeTicketKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("take purge ticket %s: %w", id, err)
	}
	var t models.PurgeTicket
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("decode purge ticket %s: %w", id, err)
	}
	return &t, nil
}

// MemoryPurgeStore is the single-process fallback used when Redis is not configured.
type MemoryPurgeStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	tickets map[string]models.PurgeTicket
}

func NewMemoryPurgeStore(ttl time.Duration) *MemoryPurgeStore {
	return &MemoryPurgeStore{
		ttl:     ttl,
		now:     time.Now,
		tickets: make(map[string]models.PurgeTicket),
	}
}

var _ PurgeTicketStore = (*MemoryPurgeStore)(nil)

func (s *MemoryPurgeStore) Save(_ context.Context, t models.PurgeTicket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	s.tickets[t.ID] = t
	return nil
}

func (s *MemoryPurgeStore) Take(_ context.Context, id string) (*models.PurgeTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpired()
	t, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	delete(s.tickets, id)
	return &t, nil
}

// evictExpired must be called with mu held.
func (s *MemoryPurgeStore) evictExpired() {
	now := s.now()
	for id, t := range s.tickets {
		if now.Sub(t.RequestedAt) > s.ttl {
			delete(s.tickets, id)
		}
	}
}
