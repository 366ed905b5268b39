package branch

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
)

type BranchServiceImpl struct {
	branchRepo  branch.BranchRepository
	companyRepo company.CompanyRepository
}

func NewBranchService(branchRepo branch.BranchRepository, companyRepo company.CompanyRepository) branch.BranchService {
	return &BranchServiceImpl{branchRepo: branchRepo, companyRepo: companyRepo}
}

// ListByCompany implements branch.BranchService.
func (s *BranchServiceImpl) ListByCompany(ctx context.Context, companyID string) ([]branch.BranchResponse, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, branch.ErrCompanyIDRequired
	}

	branches, err := s.branchRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	responses := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, branch.ToResponse(b))
	}
	return responses, nil
}

// Create implements branch.BranchService.
func (s *BranchServiceImpl) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if _, err := s.companyRepo.GetByID(ctx, req.CompanyID); err != nil {
		return branch.BranchResponse{}, err
	}

	created, err := s.branchRepo.Create(ctx, branch.Branch{
		CompanyID: req.CompanyID,
		Name:      strings.TrimSpace(req.Name),
	})
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}
	return branch.ToResponse(created), nil
}

// Update implements branch.BranchService.
func (s *BranchServiceImpl) Update(ctx context.Context, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.branchRepo.Update(ctx, req); err != nil {
		return branch.BranchResponse{}, err
	}

	updated, err := s.branchRepo.GetByID(ctx, req.ID)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(updated), nil
}

// Delete implements branch.BranchService.
func (s *BranchServiceImpl) Delete(ctx context.Context, id string) error {
	return s.branchRepo.Delete(ctx, id)
}
