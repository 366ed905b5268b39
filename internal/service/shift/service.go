package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/jwt"
)

const dateLayout = "2006-01-02"

type ShiftServiceImpl struct {
	shiftRepo shift.ShiftRepository
	userRepo  user.UserRepository
	loc       *time.Location
}

func NewShiftService(shiftRepo shift.ShiftRepository, userRepo user.UserRepository, loc *time.Location) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo: shiftRepo,
		userRepo:  userRepo,
		loc:       loc,
	}
}

func (s *ShiftServiceImpl) parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return day, nil
}

// companyUsers returns the IDs of companyID's users, or nil when companyID is empty.
func (s *ShiftServiceImpl) companyUsers(ctx context.Context, companyID string) (map[string]bool, error) {
	if companyID == "" {
		return nil, nil
	}
	users, err := s.userRepo.List(ctx, user.Filter{CompanyID: &companyID})
	if err != nil {
		return nil, fmt.Errorf("failed to list company users: %w", err)
	}
	ids := make(map[string]bool, len(users))
	for _, u := range users {
		ids[u.ID] = true
	}
	return ids, nil
}

// inScope drops shifts of users outside ids. A nil ids keeps everything.
func inScope(shifts []shift.Shift, ids map[string]bool) []shift.Shift {
	if ids == nil {
		return shifts
	}
	kept := shifts[:0:0]
	for _, sh := range shifts {
		if ids[sh.UserID] {
			kept = append(kept, sh)
		}
	}
	return kept
}

// authorizeShift loads the shift and checks the caller may act on its user.
func (s *ShiftServiceImpl) authorizeShift(ctx context.Context, id string) (shift.Shift, error) {
	sh, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.Shift{}, err
	}
	u, err := s.userRepo.GetByID(ctx, sh.UserID)
	if err != nil {
		return shift.Shift{}, err
	}
	if err := jwt.Authorize(ctx, u); err != nil {
		return shift.Shift{}, err
	}
	return sh, nil
}

func toResponse(sh shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:        sh.ID,
		UserID:    sh.UserID,
		Date:      sh.DayKey(),
		StartTime: sh.StartTime,
		EndTime:   sh.EndTime,
		Type:      string(sh.Type),
		Hours:     Hours(sh.StartTime, sh.EndTime),
		Overnight: IsOvernight(sh.StartTime, sh.EndTime),
		CreatedAt: sh.CreatedAt,
	}
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context, query shift.ListShiftsQuery) ([]shift.ShiftResponse, error) {
	from, err := s.parseDay(query.From)
	if err != nil {
		return nil, err
	}
	to, err := s.parseDay(query.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, shift.ErrInvalidDateRange
	}

	ids, err := s.companyUsers(ctx, query.CompanyID)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.ListByDateRange(ctx, from, to.AddDate(0, 0, 1).Add(-time.Millisecond))
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	shifts = inScope(shifts, ids)

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		if query.UserID != "" && sh.UserID != query.UserID {
			continue
		}
		responses = append(responses, toResponse(sh))
	}
	return responses, nil
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	day, err := s.parseDay(req.Date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := jwt.Authorize(ctx, u); err != nil {
		return shift.ShiftResponse{}, err
	}
	if !u.IsShiftEligible() {
		return shift.ShiftResponse{}, shift.ErrUserNotEligible
	}

	existing, err := s.shiftRepo.ListByUserAndDay(ctx, req.UserID, day)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to check existing shifts: %w", err)
	}
	if len(existing) > 0 {
		return shift.ShiftResponse{}, shift.ErrShiftExistsOnDay
	}

	typ := shift.Type(req.Type)
	if typ == "" {
		typ = shift.TypeNormal
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		UserID:    req.UserID,
		Date:      day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Type:      typ,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return toResponse(created), nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if _, err := s.authorizeShift(ctx, req.ID); err != nil {
		return shift.ShiftResponse{}, err
	}
	if err := s.shiftRepo.Update(ctx, req); err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toResponse(updated), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := s.authorizeShift(ctx, id); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}

// WeekPlan implements shift.ShiftService.
// Rows list every shift-eligible user in scope, cells run Monday to Sunday.
func (s *ShiftServiceImpl) WeekPlan(ctx context.Context, query shift.WeekPlanQuery) (shift.WeekPlanResponse, error) {
	day, err := s.parseDay(query.Date)
	if err != nil {
		return shift.WeekPlanResponse{}, err
	}
	weekStart, weekEnd := WeekRange(day, s.loc)

	filter := user.Filter{}
	if query.CompanyID != "" {
		filter.CompanyID = &query.CompanyID
	}
	if query.BranchID != "" {
		filter.BranchID = &query.BranchID
	}

	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return shift.WeekPlanResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	shifts, err := s.shiftRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return shift.WeekPlanResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	days := make([]string, 7)
	dayIndex := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		key := weekStart.AddDate(0, 0, i).Format(dateLayout)
		days[i] = key
		dayIndex[key] = i
	}

	byUser := make(map[string][]shift.Shift)
	for _, sh := range shifts {
		byUser[sh.UserID] = append(byUser[sh.UserID], sh)
	}

	rows := make([]shift.WeekPlanRow, 0, len(users))
	for _, u := range users {
		if !u.IsShiftEligible() {
			continue
		}

		row := shift.WeekPlanRow{
			UserID:   u.ID,
			UserName: u.Name,
			Cells:    make([]*shift.ShiftResponse, 7),
		}
		for _, sh := range byUser[u.ID] {
			idx, ok := dayIndex[sh.Date.In(s.loc).Format(dateLayout)]
			if !ok || row.Cells[idx] != nil {
				continue
			}
			resp := toResponse(sh)
			row.Cells[idx] = &resp
			row.TotalHours += resp.Hours
		}
		rows = append(rows, row)
	}

	return shift.WeekPlanResponse{
		WeekStart: weekStart.Format(dateLayout),
		WeekEnd:   weekEnd.Format(dateLayout),
		Days:      days,
		Rows:      rows,
	}, nil
}

// CopyWeek implements shift.ShiftService.
// Each shift of the source week is copied seven days forward. Without overwrite a target day that
// already has a shift for the user is skipped, so repeating the copy is a no-op. With overwrite
// the target week is cleared first and ends up holding exactly the copied shifts. Both weeks are
// limited to req.CompanyID's users when it is set. The loop is not transactional: on failure the
// counts describe what was done before the error.
func (s *ShiftServiceImpl) CopyWeek(ctx context.Context, req shift.CopyWeekRequest) (shift.BulkResult, error) {
	var result shift.BulkResult

	day, err := s.parseDay(req.Week)
	if err != nil {
		return result, err
	}
	weekStart, weekEnd := WeekRange(day, s.loc)
	targetStart, targetEnd := WeekRange(weekStart.AddDate(0, 0, 7), s.loc)

	ids, err := s.companyUsers(ctx, req.CompanyID)
	if err != nil {
		return result, err
	}

	source, err := s.shiftRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return result, fmt.Errorf("failed to list source week: %w", err)
	}
	source = inScope(source, ids)

	existing, err := s.shiftRepo.ListByDateRange(ctx, targetStart, targetEnd)
	if err != nil {
		return result, fmt.Errorf("failed to list target week: %w", err)
	}
	existing = inScope(existing, ids)

	occupied := make(map[string]bool, len(existing))
	for _, sh := range existing {
		occupied[sh.UserID+"|"+sh.Date.In(s.loc).Format(dateLayout)] = true
	}

	if req.Overwrite {
		for _, old := range existing {
			if err := s.shiftRepo.Delete(ctx, old.ID); err != nil {
				return result, fmt.Errorf("failed to delete shift %s: %w", old.ID, err)
			}
			result.Deleted++
		}
	}

	for _, sh := range source {
		target := StartOfDay(sh.Date, s.loc).AddDate(0, 0, 7)
		key := sh.UserID + "|" + target.Format(dateLayout)

		if occupied[key] {
			if !req.Overwrite {
				result.Skipped++
				continue
			}
			result.Replaced++
		}

		if _, err := s.shiftRepo.Create(ctx, shift.Shift{
			UserID:    sh.UserID,
			Date:      target,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
			Type:      sh.Type,
		}); err != nil {
			return result, fmt.Errorf("failed to copy shift %s: %w", sh.ID, err)
		}
		result.Copied++
		if !req.Overwrite {
			occupied[key] = true
		}
	}

	slog.Info("week copied",
		"week_start", weekStart.Format(dateLayout),
		"company_id", req.CompanyID,
		"overwrite", req.Overwrite,
		"copied", result.Copied,
		"skipped", result.Skipped,
		"replaced", result.Replaced,
		"deleted", result.Deleted,
	)
	return result, nil
}

// ClearWeek implements shift.ShiftService.
func (s *ShiftServiceImpl) ClearWeek(ctx context.Context, req shift.ClearWeekRequest) (shift.BulkResult, error) {
	var result shift.BulkResult

	day, err := s.parseDay(req.Date)
	if err != nil {
		return result, err
	}
	weekStart, weekEnd := WeekRange(day, s.loc)

	ids, err := s.companyUsers(ctx, req.CompanyID)
	if err != nil {
		return result, err
	}

	shifts, err := s.shiftRepo.ListByDateRange(ctx, weekStart, weekEnd)
	if err != nil {
		return result, fmt.Errorf("failed to list week: %w", err)
	}
	shifts = inScope(shifts, ids)

	for _, sh := range shifts {
		if err := s.shiftRepo.Delete(ctx, sh.ID); err != nil {
			return result, fmt.Errorf("failed to delete shift %s: %w", sh.ID, err)
		}
		result.Deleted++
	}

	slog.Info("week cleared", "week_start", weekStart.Format(dateLayout), "company_id", req.CompanyID, "deleted", result.Deleted)
	return result, nil
}
