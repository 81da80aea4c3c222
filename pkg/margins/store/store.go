// Package store persists margin analyses keyed by id.
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/komsit37/margins/pkg/margins/types"
)

var (
	ErrNotFound = errors.New("analysis not found")
	ErrExists   = errors.New("analysis already exists")
	// ErrQuota is returned when a write would exceed the store's size limit.
	ErrQuota = errors.New("storage quota exceeded")
)

// Store is CRUD over analyses. Implementations must be safe for concurrent use.
type Store interface {
	// List returns every analysis, newest first.
	List(ctx context.Context) ([]types.MarginAnalysis, error)
	Get(ctx context.Context, id string) (*types.MarginAnalysis, error)
	Create(ctx context.Context, a types.MarginAnalysis) error
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch Patch) error
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Name     *string
	FileName *string
}

func (p Patch) apply(a *types.MarginAnalysis) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.FileName != nil {
		a.FileName = *p.FileName
	}
}

func sortNewestFirst(list []types.MarginAnalysis) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
