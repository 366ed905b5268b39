package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo    user.UserRepository
	companyRepo company.CompanyRepository
	branchRepo  branch.BranchRepository
}

func NewUserService(userRepo user.UserRepository, companyRepo company.CompanyRepository, branchRepo branch.BranchRepository) user.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		branchRepo:  branchRepo,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.Filter) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := jwt.Authorize(ctx, u); err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	companyID := emptyToNil(req.CompanyID)
	branchID := emptyToNil(req.BranchID)
	if err := s.checkAssignment(ctx, companyID, branchID); err != nil {
		return user.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = user.DefaultCountry
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        req.Phone,
		Role:         user.Role(req.Role),
		CompanyID:    companyID,
		BranchID:     branchID,
		Country:      country,
		Status:       user.StatusActive,
		PasswordHash: &hash,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role)
	return user.ToResponse(created), nil
}

// Update implements user.UserService.
// Moving a user to another company without naming a new branch clears the branch.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	current, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := jwt.Authorize(ctx, current); err != nil {
		return user.UserResponse{}, err
	}

	companyID := current.CompanyID
	if req.CompanyID != nil {
		companyID = emptyToNil(req.CompanyID)
		if !sameID(companyID, current.CompanyID) && req.BranchID == nil {
			req.ClearBranch = true
		}
	}

	branchID := current.BranchID
	if req.BranchID != nil {
		branchID = emptyToNil(req.BranchID)
	} else if req.ClearBranch {
		branchID = nil
	}

	if err := s.checkAssignment(ctx, companyID, branchID); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.userRepo.Update(ctx, req); err != nil {
		return user.UserResponse{}, err
	}
	return s.Get(ctx, req.ID)
}

// checkAssignment verifies the company exists and owns the branch.
func (s *UserServiceImpl) checkAssignment(ctx context.Context, companyID, branchID *string) error {
	if companyID != nil {
		if _, err := s.companyRepo.GetByID(ctx, *companyID); err != nil {
			return err
		}
	}
	if branchID != nil {
		if companyID == nil {
			return user.ErrBranchCompanyMismatch
		}
		b, err := s.branchRepo.GetByID(ctx, *branchID)
		if err != nil {
			return err
		}
		if b.CompanyID != *companyID {
			return user.ErrBranchCompanyMismatch
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
