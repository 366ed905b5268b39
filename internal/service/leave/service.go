package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRepository
	userRepo  user.UserRepository
	loc       *time.Location
	now       func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRepository, userRepo user.UserRepository, loc *time.Location) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// List implements leave.LeaveService.
// A CompanyID in the query drops requests of users outside that company.
func (s *LeaveServiceImpl) List(ctx context.Context, query leave.ListLeavesQuery) ([]leave.LeaveResponse, error) {
	filter := leave.Filter{}
	if query.UserID != "" {
		filter.UserID = &query.UserID
	}
	if query.Status != "" {
		status := leave.Status(query.Status)
		filter.Status = &status
	}

	leaves, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	userFilter := user.Filter{}
	if query.CompanyID != "" {
		userFilter.CompanyID = &query.CompanyID
	}
	users, err := s.userRepo.List(ctx, userFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		if _, ok := names[l.UserID]; !ok && query.CompanyID != "" {
			continue
		}
		resp := leave.ToResponse(l)
		resp.UserName = names[l.UserID]
		responses = append(responses, resp)
	}
	return responses, nil
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, s.loc)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, s.loc)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := jwt.Authorize(ctx, u); err != nil {
		return leave.LeaveResponse{}, err
	}

	var reason *string
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		trimmed := strings.TrimSpace(*req.Reason)
		reason = &trimmed
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		UserID:    u.ID,
		Type:      leave.Type(req.Type),
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	resp := leave.ToResponse(created)
	resp.UserName = u.Name
	return resp, nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return s.review(ctx, id, leave.StatusApproved, nil)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return leave.LeaveResponse{}, leave.ErrRejectReasonRequired
	}
	return s.review(ctx, req.ID, leave.StatusRejected, &reason)
}

// get loads a leave request whose user the caller may act on.
func (s *LeaveServiceImpl) get(ctx context.Context, id string) (leave.LeaveRequest, error) {
	l, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	u, err := s.userRepo.GetByID(ctx, l.UserID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := jwt.Authorize(ctx, u); err != nil {
		return leave.LeaveRequest{}, err
	}
	return l, nil
}

// review moves a pending request to status and stamps the reviewer from the request token.
func (s *LeaveServiceImpl) review(ctx context.Context, id string, status leave.Status, rejectReason *string) (leave.LeaveResponse, error) {
	l, err := s.get(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if !l.IsReviewable() {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	reviewedAt := s.now().UTC()
	l.Status = status
	l.ReviewedBy = reviewerID(ctx)
	l.ReviewedAt = &reviewedAt
	l.RejectReason = rejectReason

	if err := s.leaveRepo.UpdateStatus(ctx, l); err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave request reviewed", "leave_id", l.ID, "status", status)
	return leave.ToResponse(l), nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	l, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !l.IsDeletable() {
		return leave.ErrLeaveNotDeletable
	}
	return s.leaveRepo.Delete(ctx, id)
}

func reviewerID(ctx context.Context) *string {
	caller, ok := jwt.CallerFromContext(ctx)
	if !ok || caller.UserID == "" {
		return nil
	}
	return &caller.UserID
}
