package submissions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	byJob map[string][]Submission
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byJob: make(map[string][]Submission)}
}

func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byJob[sub.JobID] = append(r.byJob[sub.JobID], sub)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	matched := r.filtered(filter.JobID, filter.Status)
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].ATSScore != matched[j].ATSScore {
			return matched[i].ATSScore > matched[j].ATSScore
		}
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []Submission{}, nil
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], nil
}

func (r *MemoryRepo) Count(ctx context.Context, jobID, status string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.filtered(jobID, status)), nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, submissionID, jobID, status string, updatedAt time.Time) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := r.byJob[jobID]
	for i := range subs {
		if subs[i].ID == submissionID {
			subs[i].Status = status
			subs[i].UpdatedAt = updatedAt
			r.byJob[jobID] = subs
			return subs[i], nil
		}
	}
	return Submission{}, ErrApplicationNotFound
}

// filtered returns copies of the matching submissions. Callers must hold at
// least a read lock.
func (r *MemoryRepo) filtered(jobID, status string) []Submission {
	out := []Submission{}
	for _, sub := range r.byJob[jobID] {
		if status != "" && sub.Status != status {
			continue
		}
		out = append(out, sub)
	}
	return out
}
