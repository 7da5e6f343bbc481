// Package storage implements typed record collections on top of a
// ports.KeyValueStore.
//
// Each collection lives under one key as a JSON array. Every mutation loads
// the whole array, changes it and writes the whole array back, so the
// stored blob is always a complete, decodable collection.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/pkg/metrics"
)

// DefaultKeyPrefix namespaces collection keys inside the store.
const DefaultKeyPrefix = "crud_app_"

const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
)

// record is satisfied by pointers to domain records embedding domain.Meta.
type record[R any] interface {
	*R
	Envelope() *domain.Meta
}

// Options configures a collection. Zero values pick the defaults.
type Options struct {
	KeyPrefix string
	IDs       IDFunc
	Clock     Clock
	Logger    zerolog.Logger
}

// Collection is the generic persistence for one record kind.
type Collection[R any, PR record[R]] struct {
	name  string
	key   string
	store ports.KeyValueStore
	ids   IDFunc
	now   Clock
	log   zerolog.Logger

	// mu serialises read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewCollection binds a collection name to its key in store.
func NewCollection[R any, PR record[R]](name string, store ports.KeyValueStore, opts Options) *Collection[R, PR] {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	ids := opts.IDs
	if ids == nil {
		ids = NewID
	}
	now := opts.Clock
	if now == nil {
		now = Now
	}
	return &Collection[R, PR]{
		name:  name,
		key:   prefix + name,
		store: store,
		ids:   ids,
		now:   now,
		log:   opts.Logger.With().Str("component", "storage").Str("collection", name).Logger(),
	}
}

// Key returns the storage key of the collection.
func (c *Collection[R, PR]) Key() string { return c.key }

// Insert stamps rec with a new identity, appends it and persists.
func (c *Collection[R, PR]) Insert(ctx context.Context, rec R) (*R, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	PR(&rec).Envelope().Stamp(c.ids(), c.now())
	items = append(items, rec)

	if err := c.save(ctx, items); err != nil {
		return nil, err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(c.name, "create").Inc()
	return &rec, nil
}

// All returns the stored records. Backend failures are logged and yield an
// empty collection.
func (c *Collection[R, PR]) All(ctx context.Context) []R {
	items, err := c.load(ctx)
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(c.name, "read").Inc()
		c.log.Warn().Err(err).Msg("read failed, serving empty collection")
		return []R{}
	}
	if items == nil {
		return []R{}
	}
	return items
}

// Find returns the record with the given id.
func (c *Collection[R, PR]) Find(ctx context.Context, id string) (*R, bool) {
	items := c.All(ctx)
	if i := indexOf[R, PR](items, id); i >= 0 {
		return &items[i], true
	}
	return nil, false
}

// Modify applies fn to the record with the given id, refreshes UpdatedAt
// and persists. The id and CreatedAt survive whatever fn does.
func (c *Collection[R, PR]) Modify(ctx context.Context, id string, fn func(PR)) (*R, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, false, err
	}
	i := indexOf[R, PR](items, id)
	if i < 0 {
		return nil, false, nil
	}

	rec := PR(&items[i])
	keep := *rec.Envelope()
	fn(rec)
	env := rec.Envelope()
	env.ID = keep.ID
	env.CreatedAt = keep.CreatedAt
	env.UpdatedAt = keep.UpdatedAt
	env.Touch(c.now())

	if err := c.save(ctx, items); err != nil {
		return nil, false, err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(c.name, "update").Inc()
	out := items[i]
	return &out, true, nil
}

// Remove deletes the record with the given id. Nothing is written when the
// id is unknown.
func (c *Collection[R, PR]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return false, err
	}
	i := indexOf[R, PR](items, id)
	if i < 0 {
		return false, nil
	}

	items = append(items[:i], items[i+1:]...)
	if err := c.save(ctx, items); err != nil {
		return false, err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(c.name, "delete").Inc()
	return true, nil
}

// Seed writes recs as the whole collection, stamped in order, when the key
// has never been written. The check and the single write happen under the
// collection lock, so concurrent calls seed at most once and a failed write
// leaves the key absent.
func (c *Collection[R, PR]) Seed(ctx context.Context, recs []R) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("%s: check key: %w", c.name, err)
	}
	if found {
		return false, nil
	}

	items := make([]R, len(recs))
	copy(items, recs)
	for i := range items {
		PR(&items[i]).Envelope().Stamp(c.ids(), c.now())
	}

	if err := c.save(ctx, items); err != nil {
		return false, err
	}
	metrics.RecordsMutatedTotal.WithLabelValues(c.name, "seed").Add(float64(len(items)))
	return true, nil
}

// load reads the stored array. A missing key or an undecodable payload is an
// empty collection; only backend failures are returned.
func (c *Collection[R, PR]) load(ctx context.Context) ([]R, error) {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("%s: load: %w", c.name, err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var items []R
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		metrics.CorruptPayloadsTotal.WithLabelValues(c.name).Inc()
		c.log.Warn().Err(err).Str("key", c.key).Msg("corrupted payload, treating collection as empty")
		return nil, nil
	}
	return items, nil
}

func (c *Collection[R, PR]) save(ctx context.Context, items []R) error {
	if items == nil {
		items = []R{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", c.name, err)
	}
	if err := c.store.Set(ctx, c.key, string(b)); err != nil {
		metrics.StorageErrorsTotal.WithLabelValues(c.name, "write").Inc()
		return fmt.Errorf("%s: save: %w", c.name, err)
	}
	return nil
}

func indexOf[R any, PR record[R]](items []R, id string) int {
	for i := range items {
		if PR(&items[i]).Envelope().ID == id {
			return i
		}
	}
	return -1
}
