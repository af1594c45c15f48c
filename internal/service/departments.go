package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/deptdash/internal/domain/model"
	apperrors "github.com/target/deptdash/internal/errors"
	"github.com/target/deptdash/internal/observability/metrics"
	"github.com/target/deptdash/internal/ports"
)

// MsgFillAllFields is reported when a department form is incomplete.
const MsgFillAllFields = "Please fill in all fields"

// DepartmentServiceOptions groups dependencies for DepartmentService.
type DepartmentServiceOptions struct {
	Session       ports.TokenStore
	API           ports.DepartmentAPI
	Observability Observability
}

// DepartmentService keeps a view's department list consistent with the server.
// After every successful mutation the list is re-fetched, never patched locally.
// Concurrent calls are not serialized; whichever refresh completes last is what
// the caller ends up rendering.
type DepartmentService struct {
	session  ports.TokenStore
	api      ports.DepartmentAPI
	logger   *slog.Logger
	metrics  metrics.Sink
	validate *inputValidator
}

// MutationResult is the outcome of an add or delete followed by a refresh.
type MutationResult struct {
	// Created is set by Add.
	Created model.Department
	// Departments is the refreshed list; nil when the refresh failed.
	Departments model.DepartmentList
}

// NewDepartmentService constructs a new DepartmentService.
func NewDepartmentService(opts DepartmentServiceOptions) *DepartmentService {
	if opts.Session == nil {
		panic("DepartmentService: Session is required")
	}
	if opts.API == nil {
		panic("DepartmentService: API is required")
	}
	logger := opts.Observability.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DepartmentService{
		session:  opts.Session,
		api:      opts.API,
		logger:   logger.With("component", "department_service"),
		metrics:  opts.Observability.Metrics,
		validate: newInputValidator(),
	}
}

// List fetches the current department list.
func (s *DepartmentService) List(ctx context.Context) (model.DepartmentList, error) {
	depts, err := s.api.ListDepartments(ctx)
	if err != nil {
		return nil, s.observe(ctx, err)
	}
	return model.DepartmentList(depts), nil
}

// Get fetches one department.
func (s *DepartmentService) Get(ctx context.Context, id string) (model.Department, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Department{}, apperrors.ValidationField("id", "id is required")
	}
	dept, err := s.api.GetDepartment(ctx, id)
	if err != nil {
		return model.Department{}, s.observe(ctx, err)
	}
	return dept, nil
}

// Add creates a department and re-fetches the list. When the create succeeds but the
// refresh fails, Created is populated and the refresh error is returned.
func (s *DepartmentService) Add(ctx context.Context, req model.CreateDepartmentRequest) (MutationResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := s.validate.Struct(req); err != nil {
		return MutationResult{}, apperrors.ValidationField(apperrors.GetField(err), MsgFillAllFields)
	}

	created, err := s.api.AddDepartment(ctx, req.Name, req.Description)
	if err != nil {
		return MutationResult{}, s.observe(ctx, err)
	}

	res := MutationResult{Created: created}
	res.Departments, err = s.List(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh after add: %w", err)
	}
	return res, nil
}

// Delete removes a department and re-fetches the list. A missing department is an error.
func (s *DepartmentService) Delete(ctx context.Context, id string) (MutationResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return MutationResult{}, apperrors.ValidationField("id", "id is required")
	}

	if err := s.api.DeleteDepartment(ctx, id); err != nil {
		return MutationResult{}, s.observe(ctx, err)
	}

	var res MutationResult
	var err error
	res.Departments, err = s.List(ctx)
	if err != nil {
		return res, fmt.Errorf("refresh after delete: %w", err)
	}
	return res, nil
}

// observe drops the stored token when the server rejected it, so the next view
// sees an unauthenticated session.
func (s *DepartmentService) observe(ctx context.Context, err error) error {
	switch {
	case apperrors.IsUnauthorized(err):
		metrics.EmitSessionEvent(s.metrics, metrics.SessionInvalidated)
		if clearErr := s.session.ClearToken(ctx); clearErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear rejected token", "error", clearErr)
		}
	case apperrors.IsNotAuthenticated(err):
		metrics.EmitSessionEvent(s.metrics, metrics.SessionTokenMissing)
	}
	return err
}
