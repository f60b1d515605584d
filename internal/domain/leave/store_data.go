package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

const requestColumns = `
    id, employee_id, leave_type, start_date, end_date, days, COALESCE(reason, ''), status,
    COALESCE(decision_notes, ''), COALESCE(hr_reviewed_by::text, ''), hr_reviewed_at,
    COALESCE(decided_by::text, ''), approved_at, rejected_at, created_at, updated_at`

func (s *Store) Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING`+requestColumns, request.EmployeeID, string(request.Type), request.StartDate,
		request.EndDate, request.Days, request.Reason, string(request.Status))
	return scanRequest(row)
}

func (s *Store) Get(ctx context.Context, requestID string) (LeaveRequest, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, requestID)

	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	return request, err
}

func (s *Store) List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int, error) {
	query := `
    SELECT` + requestColumns + `
    FROM leave_requests
    WHERE 1=1`
	countQuery := `
    SELECT COUNT(1)
    FROM leave_requests
    WHERE 1=1`
	var args []any

	appendCond := func(cond string, value any) {
		args = append(args, value)
		clause := fmt.Sprintf(cond, len(args))
		query += clause
		countQuery += clause
	}

	if filter.EmployeeID != "" {
		appendCond(" AND employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		appendCond(" AND status = $%d", string(filter.Status))
	}
	if filter.Type != "" {
		appendCond(" AND leave_type = $%d", string(filter.Type))
	}

	var total int
	if err := s.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		total = 0
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []LeaveRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, request)
	}
	return requests, total, rows.Err()
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]LeaveRequest, error) {
	requests, _, err := s.List(ctx, ListFilter{Status: status})
	return requests, err
}

// Transition performs the conditional status write. The WHERE clause pins
// the expected pre-state so that concurrent conflicting transitions resolve
// to exactly one winner; the loser sees zero rows updated and gets
// ErrInvalidState.
func (s *Store) Transition(ctx context.Context, requestID string, from, to Status, mutation Mutation) (LeaveRequest, error) {
	query := `
    UPDATE leave_requests
    SET status = $1, updated_at = now()`
	args := []any{string(to)}

	appendSet := func(column string, value any) {
		args = append(args, value)
		query += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if mutation.HRReviewedBy != "" {
		appendSet("hr_reviewed_by", mutation.HRReviewedBy)
	}
	if mutation.HRReviewedAt != nil {
		appendSet("hr_reviewed_at", *mutation.HRReviewedAt)
	}
	if mutation.DecidedBy != "" {
		appendSet("decided_by", mutation.DecidedBy)
	}
	if mutation.DecisionNotes != nil {
		appendSet("decision_notes", *mutation.DecisionNotes)
	}
	if mutation.ApprovedAt != nil {
		appendSet("approved_at", *mutation.ApprovedAt)
	}
	if mutation.RejectedAt != nil {
		appendSet("rejected_at", *mutation.RejectedAt)
	}

	args = append(args, requestID, string(from))
	query += fmt.Sprintf(" WHERE id = $%d AND status = $%d RETURNING", len(args)-1, len(args)) + requestColumns

	row := s.DB.QueryRow(ctx, query, args...)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the request is gone or another actor moved it first.
		if _, getErr := s.Get(ctx, requestID); getErr != nil {
			return LeaveRequest{}, getErr
		}
		return LeaveRequest{}, fmt.Errorf("%w: expected status %s", ErrInvalidState, from)
	}
	return request, err
}

func (s *Store) ApprovedDaysForYear(ctx context.Context, employeeID string, year int) (int, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var days int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(days), 0)
    FROM leave_requests
    WHERE employee_id = $1 AND status = $2 AND start_date >= $3 AND start_date < $4
  `, employeeID, string(StatusApproved), start, end).Scan(&days)
	return days, err
}

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var request LeaveRequest
	var leaveType, status string
	if err := row.Scan(&request.ID, &request.EmployeeID, &leaveType, &request.StartDate, &request.EndDate,
		&request.Days, &request.Reason, &status, &request.DecisionNotes, &request.HRReviewedBy,
		&request.HRReviewedAt, &request.DecidedBy, &request.ApprovedAt, &request.RejectedAt,
		&request.CreatedAt, &request.UpdatedAt); err != nil {
		return LeaveRequest{}, err
	}

	parsedType, err := ParseLeaveType(leaveType)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("leave request %s: %w", request.ID, err)
	}
	parsedStatus, err := ParseStatus(status)
	if err != nil {
		return LeaveRequest{}, fmt.Errorf("leave request %s: %w", request.ID, err)
	}

	request.Type = parsedType
	request.Status = parsedStatus
	return request, nil
}
