package service

import (
	"context"
	"encoding/json"
	"fmt"

	"HiddenLight/internal/domain"
	"HiddenLight/internal/ports"
)

// Records is the generic keyed repository every content service is built on.
// It stores records of one type under a shared key prefix in the user-data
// collection, delegating tombstone-style deletion to the record store.
type Records[T any] struct {
	store  ports.RecordStore
	prefix string

	// Defaults fills derived fields before a Create write, Validate rejects
	// bad records before any write. Either may be nil.
	Defaults func(*T)
	Validate func(*T) error
}

// NewRecords builds a repository for records keyed under prefix.
func NewRecords[T any](store ports.RecordStore, prefix string) *Records[T] {
	return &Records[T]{store: store, prefix: prefix}
}

func (r *Records[T]) key(id string) string { return r.prefix + id }

// Create applies Defaults and Validate, then writes the record under id.
func (r *Records[T]) Create(ctx context.Context, id string, record *T) error {
	if r.Defaults != nil {
		r.Defaults(record)
	}
	if r.Validate != nil {
		if err := r.Validate(record); err != nil {
			return err
		}
	}
	return r.Put(ctx, id, record)
}

// Put writes the record under id without running the hooks.
func (r *Records[T]) Put(ctx context.Context, id string, record *T) error {
	if err := r.store.SaveUserData(ctx, r.key(id), record); err != nil {
		return fmt.Errorf("put %s: %w", r.key(id), err)
	}
	return nil
}

// Get loads the record stored under id, domain.ErrNotFound when absent.
func (r *Records[T]) Get(ctx context.Context, id string) (*T, error) {
	var record T
	found, err := r.store.GetUserData(ctx, r.key(id), &record)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.key(id), err)
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Delete tombstones the record under id. Deleting an absent record is
// domain.ErrNotFound.
func (r *Records[T]) Delete(ctx context.Context, id string) error {
	found, err := r.store.GetUserData(ctx, r.key(id), nil)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.key(id), err)
	}
	if !found {
		return domain.ErrNotFound
	}
	if err := r.store.SaveUserData(ctx, r.key(id), nil); err != nil {
		return fmt.Errorf("delete %s: %w", r.key(id), err)
	}
	return nil
}

// List returns every live record under the repository prefix, in key order.
func (r *Records[T]) List(ctx context.Context) ([]T, error) {
	return r.ListPrefix(ctx, "")
}

// ListPrefix returns live records whose id starts with the given sub-prefix.
func (r *Records[T]) ListPrefix(ctx context.Context, sub string) ([]T, error) {
	entries, err := r.store.ListUserData(ctx, r.prefix+sub)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.prefix+sub, err)
	}
	records := make([]T, 0, len(entries))
	for _, e := range entries {
		var record T
		if err := json.Unmarshal(e.Value, &record); err != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, err)
		}
		records = append(records, record)
	}
	return records, nil
}
