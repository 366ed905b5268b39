package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
)

type userRepositoryImpl struct {
	mu   sync.RWMutex
	rows map[string]user.User
}

func NewUserRepository() user.UserRepository {
	return &userRepositoryImpl{rows: make(map[string]user.User)}
}

// List returns matching users ordered by name, then id.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []user.User
	for _, u := range r.rows {
		if filter.Matches(u) {
			result = append(result, u)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.rows[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.rows {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.rows {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}

	if newUser.ID == "" {
		newUser.ID = newID()
	}
	newUser.CreatedAt = now()
	r.rows[newUser.ID] = newUser
	return newUser, nil
}

func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.rows[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.CompanyID != nil {
		u.CompanyID = emptyToNil(req.CompanyID)
	}
	if req.BranchID != nil {
		u.BranchID = emptyToNil(req.BranchID)
	} else if req.ClearBranch {
		u.BranchID = nil
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.Status != nil {
		u.Status = user.Status(*req.Status)
	}
	u.UpdatedAt = ptr(now())

	r.rows[req.ID] = u
	return nil
}
