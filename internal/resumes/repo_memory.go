package resumes

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if resume.Versions == nil {
		resume.Versions = []Version{}
	}
	r.byUser[resume.UserID] = resume
	return nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byUser[userID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	out := resume
	out.Versions = append([]Version(nil), resume.Versions...)
	return out, nil
}

func (r *MemoryRepo) AppendVersion(ctx context.Context, userID string, version Version) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byUser[userID]
	if !ok {
		return ErrNotFound
	}
	resume.Versions = append(resume.Versions, version)
	resume.UpdatedAt = time.Now().UTC()
	r.byUser[userID] = resume
	return nil
}
