package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
)

type branchRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]branch.Branch
}

func NewBranchRepository() branch.BranchRepository {
	return &branchRepositoryImpl{rows: make(map[string]branch.Branch)}
}

func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = newID()
	b.CreatedAt = now()
	r.rows[b.ID] = b
	return b, nil
}

func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.rows[id]
	if !ok {
		return branch.Branch{}, branch.ErrBranchNotFound
	}
	return b, nil
}

func (r *branchRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]branch.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []branch.Branch
	for _, b := range r.rows {
		if b.CompanyID == companyID {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *branchRepositoryImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.rows[req.ID]
	if !ok {
		return branch.ErrBranchNotFound
	}
	b.Name = req.Name
	r.rows[req.ID] = b
	return nil
}

func (r *branchRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return branch.ErrBranchNotFound
	}
	delete(r.rows, id)
	return nil
}
