package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/websopen/web-valencio/internal/config"
	"github.com/websopen/web-valencio/internal/model"
)

// ErrNoData is returned when the store aggregate has never been saved.
var ErrNoData = errors.New("store data not found")

// StoreRepository persists the admin-editable aggregate in Redis as a
// single JSON value. Reads and writes are wholesale; atomicity comes from
// SET replacing the whole value.
type StoreRepository struct {
	rdb *redis.Client
}

func NewStoreRepository(rdb *redis.Client) *StoreRepository {
	return &StoreRepository{rdb: rdb}
}

// Load fetches the persisted aggregate. Returns ErrNoData if nothing has
// been saved yet.
func (r *StoreRepository) Load(ctx context.Context) (*model.StoreData, error) {
	raw, err := r.rdb.Get(ctx, config.StoreKey.Data()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoData
		}
		return nil, fmt.Errorf("load store data: %w", err)
	}

	var data model.StoreData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode store data: %w", err)
	}
	return &data, nil
}

// Save replaces the persisted aggregate in one write. No TTL — the store
// data is durable.
func (r *StoreRepository) Save(ctx context.Context, data *model.StoreData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode store data: %w", err)
	}
	if err := r.rdb.Set(ctx, config.StoreKey.Data(), raw, 0).Err(); err != nil {
		return fmt.Errorf("save store data: %w", err)
	}
	return nil
}

// HasData reports whether the aggregate has been saved at least once.
func (r *StoreRepository) HasData(ctx context.Context) (bool, error) {
	n, err := r.rdb.Exists(ctx, config.StoreKey.Data()).Result()
	if err != nil {
		return false, fmt.Errorf("check store data: %w", err)
	}
	return n > 0, nil
}

// HasAdmin reports whether an admin has already been associated with
// this store.
func (r *StoreRepository) HasAdmin(ctx context.Context) (bool, error) {
	n, err := r.rdb.Exists(ctx, config.StoreKey.AdminAssociation()).Result()
	if err != nil {
		return false, fmt.Errorf("check admin association: %w", err)
	}
	return n > 0, nil
}

// MarkAdminAssociated records that the store now has its admin.
// Idempotent; the marker carries no payload.
func (r *StoreRepository) MarkAdminAssociated(ctx context.Context) error {
	if err := r.rdb.Set(ctx, config.StoreKey.AdminAssociation(), "1", 0).Err(); err != nil {
		return fmt.Errorf("mark admin association: %w", err)
	}
	return nil
}
