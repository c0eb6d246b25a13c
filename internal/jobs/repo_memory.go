package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	bySlug map[string]Job
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{bySlug: make(map[string]Job)}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySlug[job.Slug] = job
	return nil
}

func (r *MemoryRepo) GetBySlug(ctx context.Context, slug string) (Job, error) {
	if err := ctx.Err(); err != nil {
		return Job{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.bySlug[slug]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) GetBySlugAndOwner(ctx context.Context, slug, ownerID string) (Job, error) {
	job, err := r.GetBySlug(ctx, slug)
	if err != nil {
		return Job{}, err
	}
	if job.CreatedBy != ownerID {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Job{}
	for _, job := range r.bySlug {
		if job.CreatedBy == ownerID {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
