package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/staffdesk/ui-gateway/internal/domain/model"
	"github.com/staffdesk/ui-gateway/internal/ports"
)

// Cache keys. Team and own-attendance views are scoped per user; directory
// and aggregate attendance views are shared.
const (
	keyEmployees     = "employees"
	keyAttendanceAll = "attendance:all"
)

func keyTeam(managerID int64) string { return fmt.Sprintf("team:%d", managerID) }
func keyOwnAtt(userID int64) string  { return fmt.Sprintf("attendance:own:%d", userID) }

// QueryService serves backend reads through the cache and keeps the cache
// coherent across mutations. Concurrent requests for the same cold key are
// collapsed into a single backend fetch.
type QueryService struct {
	admin    ports.AdminAPI
	employee ports.EmployeeAPI
	roles    ports.RoleAPI
	cache    ports.Cache
	ttl      time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// QueryServiceOptions contains the dependencies for NewQueryService.
type QueryServiceOptions struct {
	Admin    ports.AdminAPI
	Employee ports.EmployeeAPI
	Roles    ports.RoleAPI
	Cache    ports.Cache
	// TTL bounds staleness for cached reads.
	TTL    time.Duration
	Logger *slog.Logger
}

// NewQueryService creates a query service.
func NewQueryService(opts QueryServiceOptions) *QueryService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &QueryService{
		admin:    opts.Admin,
		employee: opts.Employee,
		roles:    opts.Roles,
		cache:    opts.Cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// cached serves a read through the cache. Cache failures degrade to a direct
// fetch; they never fail the read.
func cached[T any](ctx context.Context, s *QueryService, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	} else if data != nil {
		var out T
		if unmarshalErr := json.Unmarshal(data, &out); unmarshalErr == nil {
			return out, nil
		}
		// A stale shape in the cache is dropped and refetched.
		if invErr := s.cache.Invalidate(ctx, key); invErr != nil {
			s.logger.Warn("cache invalidate failed", "key", key, "error", invErr)
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		out, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return zero, fetchErr
		}
		if data, marshalErr := json.Marshal(out); marshalErr == nil {
			if setErr := s.cache.Set(ctx, key, data, s.ttl); setErr != nil {
				s.logger.Warn("cache write failed", "key", key, "error", setErr)
			}
		}
		return out, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (s *QueryService) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.cache.Invalidate(ctx, key); err != nil {
			s.logger.Warn("cache invalidate failed", "key", key, "error", err)
		}
	}
}

// Employees returns the full directory, cached.
func (s *QueryService) Employees(ctx context.Context) ([]model.Employee, error) {
	return cached(ctx, s, keyEmployees, s.admin.ListEmployees)
}

// TeamMembers returns the manager's roster, cached per manager.
func (s *QueryService) TeamMembers(ctx context.Context, managerID int64) ([]model.Employee, error) {
	return cached(ctx, s, keyTeam(managerID), s.employee.ListTeam)
}

// AllAttendance returns the aggregate attendance view, cached.
func (s *QueryService) AllAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	return cached(ctx, s, keyAttendanceAll, s.employee.ListAllAttendance)
}

// OwnAttendance returns the user's own history, cached per user.
func (s *QueryService) OwnAttendance(ctx context.Context, userID int64) ([]model.AttendanceRecord, error) {
	return cached(ctx, s, keyOwnAtt(userID), s.employee.ListOwnAttendance)
}

// CreateEmployee provisions an account and refreshes the directory view.
func (s *QueryService) CreateEmployee(ctx context.Context, req model.CreateEmployeeRequest) error {
	if err := s.admin.CreateEmployee(ctx, req); err != nil {
		return err
	}
	s.invalidate(ctx, keyEmployees)
	return nil
}

// AddTeamMember attaches an employee to the manager's roster and refreshes
// that roster view.
func (s *QueryService) AddTeamMember(ctx context.Context, managerID, employeeID int64) error {
	if err := s.employee.AddTeamMember(ctx, managerID, employeeID); err != nil {
		return err
	}
	s.invalidate(ctx, keyTeam(managerID))
	return nil
}

// SubmitAttendance records a day's status and refreshes both attendance
// views that now show it.
func (s *QueryService) SubmitAttendance(ctx context.Context, userID int64, sub model.AttendanceSubmission) error {
	if err := s.employee.SubmitAttendance(ctx, sub); err != nil {
		return err
	}
	s.invalidate(ctx, keyOwnAtt(userID), keyAttendanceAll)
	return nil
}

// AssignRole changes a user's role and refreshes the directory view.
func (s *QueryService) AssignRole(ctx context.Context, req model.AssignRoleRequest) error {
	if err := s.roles.AssignRole(ctx, req); err != nil {
		return err
	}
	s.invalidate(ctx, keyEmployees)
	return nil
}
