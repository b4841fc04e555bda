package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// ManagerService implements the manager profile, leave approval, the
// promotion workflow and team sales rollups.
type ManagerService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	managers  ports.ManagerRepository
	leaves    ports.LeaveRepository
	sales     ports.SalesRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewManagerService(
	users ports.UserRepository,
	employees ports.EmployeeRepository,
	managers ports.ManagerRepository,
	leaves ports.LeaveRepository,
	sales ports.SalesRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ManagerService {
	return &ManagerService{
		users:     users,
		employees: employees,
		managers:  managers,
		leaves:    leaves,
		sales:     sales,
		notifier:  notifier,
		log:       log,
	}
}

// CreateProfile provisions a manager profile. New managers start inactive and
// are invisible to privileged listings until promoted.
func (s *ManagerService) CreateProfile(ctx context.Context, userID string, in ports.CreateManagerProfileInput) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	manager := &domain.Manager{
		UserID:         userID,
		Department:     in.Department,
		OfficeLocation: in.OfficeLocation,
		IsActive:       false,
	}
	if err := s.managers.Create(ctx, manager); err != nil {
		return fmt.Errorf("create manager profile: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("department", in.Department).Msg("manager profile created")
	return nil
}

func (s *ManagerService) GetProfile(ctx context.Context, userID string) (*ports.ManagerProfile, error) {
	manager, err := s.managers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	reports, err := s.employees.ListByManager(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get manager profile: %w", err)
	}
	subordinates := make([]ports.SubordinateView, 0, len(reports))
	for _, e := range reports {
		reportUser, err := s.users.FindByID(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("get manager profile: %w", err)
		}
		applications, err := s.leaves.ListByEmployee(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("get manager profile: %w", err)
		}
		subordinates = append(subordinates, ports.SubordinateView{
			FullName:          reportUser.FullName(),
			Email:             reportUser.Email,
			LeaveApplications: leaveViews(applications),
		})
	}

	notifications, err := s.notifier.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get manager profile: %w", err)
	}

	return &ports.ManagerProfile{
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Department:     manager.Department,
		OfficeLocation: manager.OfficeLocation,
		IsActive:       manager.IsActive,
		Subordinates:   subordinates,
		Notifications:  notificationViews(notifications),
	}, nil
}

// UpdateProfile applies a partial update: provided fields overwrite, empty
// fields are left alone.
func (s *ManagerService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateManagerProfileInput) error {
	manager, err := s.managers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if in.FirstName != "" || in.LastName != "" {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		first, last := user.FirstName, user.LastName
		if in.FirstName != "" {
			first = in.FirstName
		}
		if in.LastName != "" {
			last = in.LastName
		}
		if err := s.users.UpdateName(ctx, userID, first, last); err != nil {
			return fmt.Errorf("update manager profile: %w", err)
		}
	}

	if in.Department != "" {
		manager.Department = in.Department
	}
	if in.OfficeLocation != "" {
		manager.OfficeLocation = in.OfficeLocation
	}
	if err := s.managers.Update(ctx, manager); err != nil {
		return fmt.Errorf("update manager profile: %w", err)
	}
	return nil
}

// ApproveLeave transitions a pending application belonging to one of the
// manager's direct reports to approved and notifies the employee.
func (s *ManagerService) ApproveLeave(ctx context.Context, userID, applicationID string) error {
	if _, err := s.managers.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	application, err := s.leaves.FindByID(ctx, applicationID)
	if err != nil {
		return err
	}

	employee, err := s.employees.FindByUserID(ctx, application.EmployeeID)
	if err != nil {
		return err
	}
	if employee.ManagerID != userID {
		return domain.ErrLeaveApplicationNotFound
	}
	if !application.Status.CanTransitionTo(domain.LeaveApproved) {
		return fmt.Errorf("approve leave: %w (from %s)", domain.ErrInvalidTransition, application.Status)
	}

	now := time.Now().UTC()
	approved, err := s.leaves.Approve(ctx, applicationID, userID, now)
	if err != nil {
		return err
	}

	// The entitlement drops by exactly one day per approval, not by the
	// length of the requested span (end-start+1 days). Kept for parity with
	// existing clients; the test suite pins this behavior.
	if err := s.employees.DecrementEntitlement(ctx, employee.UserID, 1); err != nil {
		return fmt.Errorf("approve leave: %w", err)
	}

	metrics.LeavesApprovedTotal.Inc()
	s.log.Info().
		Str("manager_id", userID).
		Str("application_id", applicationID).
		Str("employee_id", employee.UserID).
		Msg("leave application approved")

	employeeUser, err := s.users.FindByID(ctx, employee.UserID)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("Your leave application from %s to %s has been approved.",
		approved.StartDate.Format("2006-01-02"),
		approved.EndDate.Format("2006-01-02"),
	)
	return s.notifier.Notify(ctx, ports.NotifyInput{
		RecipientID:       employee.UserID,
		RecipientEmail:    employeeUser.Email,
		Message:           message,
		Type:              domain.NotifyLeaveApproved,
		RelatedEntityID:   approved.ID,
		RelatedEntityType: "LeaveApplicationApproval",
	})
}

// ListUnpromoted returns every inactive manager profile. An inactive caller
// gets an empty list rather than an error.
func (s *ManagerService) ListUnpromoted(ctx context.Context, userID string) ([]ports.ManagerProfile, error) {
	caller, err := s.managers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !caller.IsActive {
		return []ports.ManagerProfile{}, nil
	}

	inactive, err := s.managers.ListInactive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unpromoted managers: %w", err)
	}

	profiles := make([]ports.ManagerProfile, 0, len(inactive))
	for _, m := range inactive {
		user, err := s.users.FindByID(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("list unpromoted managers: %w", err)
		}
		profiles = append(profiles, ports.ManagerProfile{
			FirstName:      user.FirstName,
			LastName:       user.LastName,
			Email:          user.Email,
			Department:     m.Department,
			OfficeLocation: m.OfficeLocation,
			IsActive:       m.IsActive,
			Subordinates:   []ports.SubordinateView{},
			Notifications:  []ports.NotificationView{},
		})
	}
	return profiles, nil
}

// Promote activates the inactive manager matching email and notifies them.
// Racing promotions have a single winner; the loser observes not-found.
func (s *ManagerService) Promote(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrManagerNotFound
		}
		return fmt.Errorf("promote manager: %w", err)
	}

	if err := s.managers.Activate(ctx, user.ID); err != nil {
		return err
	}

	metrics.ManagersPromotedTotal.Inc()
	s.log.Info().Str("email", email).Msg("manager promoted")

	return s.notifier.Notify(ctx, ports.NotifyInput{
		RecipientID:       user.ID,
		RecipientEmail:    user.Email,
		Message:           "Your manager profile has been activated.",
		Type:              domain.NotifyAccountActivated,
		RelatedEntityType: "ManagerProfileActivation",
	})
}

// GetSubordinateProfile returns a direct report's profile, looked up by email
// within the manager's own reports.
func (s *ManagerService) GetSubordinateProfile(ctx context.Context, userID, subordinateEmail string) (*ports.EmployeeProfile, error) {
	if _, err := s.managers.FindByUserID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrManagerNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	reports, err := s.employees.ListByManager(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get subordinate profile: %w", err)
	}
	for _, e := range reports {
		reportUser, err := s.users.FindByID(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("get subordinate profile: %w", err)
		}
		if reportUser.Email != subordinateEmail {
			continue
		}
		applications, err := s.leaves.ListByEmployee(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("get subordinate profile: %w", err)
		}
		return &ports.EmployeeProfile{
			FullName:          reportUser.FullName(),
			Email:             reportUser.Email,
			Position:          e.Position,
			JobTitle:          e.JobTitle,
			DateHired:         e.DateHired,
			TotalLeaveDays:    e.TotalLeaveDaysEntitled,
			LeaveDaysTaken:    e.LeaveDaysTaken,
			LeaveApplications: leaveViews(applications),
			Notifications:     []ports.NotificationView{},
		}, nil
	}
	return nil, domain.ErrUserNotFound
}

// ListTeamSales flattens the sales records of every direct report, annotated
// with the owning subordinate's name.
func (s *ManagerService) ListTeamSales(ctx context.Context, userID string) ([]ports.TeamSaleView, error) {
	if _, err := s.managers.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}

	reports, err := s.employees.ListByManager(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list team sales: %w", err)
	}

	var views []ports.TeamSaleView
	for _, e := range reports {
		reportUser, err := s.users.FindByID(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("list team sales: %w", err)
		}
		records, err := s.sales.ListByEmployee(ctx, e.UserID)
		if err != nil {
			return nil, fmt.Errorf("list team sales: %w", err)
		}
		for _, r := range records {
			views = append(views, ports.TeamSaleView{
				SaleView:     saleView(r),
				EmployeeName: reportUser.FullName(),
			})
		}
	}
	return views, nil
}
