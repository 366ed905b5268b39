package branch

import "context"

type BranchService interface {
	ListByCompany(ctx context.Context, companyID string) ([]BranchResponse, error)
	Create(ctx context.Context, req CreateBranchRequest) (BranchResponse, error)
	Update(ctx context.Context, req UpdateBranchRequest) (BranchResponse, error)
	Delete(ctx context.Context, id string) error
}
