package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
)

type companyRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]company.Company
}

func NewCompanyRepository() company.CompanyRepository {
	return &companyRepositoryImpl{rows: make(map[string]company.Company)}
}

func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]company.Company, 0, len(r.rows))
	for _, c := range r.rows {
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.rows[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newCompany.ID = newID()
	newCompany.CreatedAt = now()
	newCompany.UpdatedAt = nil
	r.rows[newCompany.ID] = newCompany
	return newCompany, nil
}

func (r *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.rows[id]
	if !ok {
		return company.ErrCompanyNotFound
	}
	c.Name = req.Name
	c.Country = req.Country
	c.UpdatedAt = ptr(now())
	r.rows[id] = c
	return nil
}

func (r *companyRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return company.ErrCompanyNotFound
	}
	delete(r.rows, id)
	return nil
}
