package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

const noManagerAssigned = "No Manager Assigned"

// EmployeeService implements profile provisioning, leave submission and the
// sales ledger for employees.
type EmployeeService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	managers  ports.ManagerRepository
	leaves    ports.LeaveRepository
	sales     ports.SalesRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewEmployeeService(
	users ports.UserRepository,
	employees ports.EmployeeRepository,
	managers ports.ManagerRepository,
	leaves ports.LeaveRepository,
	sales ports.SalesRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *EmployeeService {
	return &EmployeeService{
		users:     users,
		employees: employees,
		managers:  managers,
		leaves:    leaves,
		sales:     sales,
		notifier:  notifier,
		log:       log,
	}
}

// CreateProfile provisions the employee profile for an existing user. The
// manager is resolved by email and may be in any activation state.
func (s *EmployeeService) CreateProfile(ctx context.Context, userID string, in ports.CreateEmployeeProfileInput) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	managerUser, err := s.users.FindByEmail(ctx, in.ManagerEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrManagerNotFound
		}
		return fmt.Errorf("create employee profile: %w", err)
	}
	if _, err := s.managers.FindByUserID(ctx, managerUser.ID); err != nil {
		return err
	}

	employee := &domain.Employee{
		UserID:                 userID,
		Position:               in.Position,
		JobTitle:               in.JobTitle,
		DateHired:              domain.DateOnly(in.DateHired),
		ManagerID:              managerUser.ID,
		TotalLeaveDaysEntitled: domain.DefaultLeaveEntitlement,
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return fmt.Errorf("create employee profile: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("manager_id", managerUser.ID).Msg("employee profile created")
	return nil
}

func (s *EmployeeService) GetProfile(ctx context.Context, userID string) (*ports.EmployeeProfile, error) {
	employee, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	managerName, managerEmail := noManagerAssigned, noManagerAssigned
	if employee.ManagerID != "" {
		if managerUser, err := s.users.FindByID(ctx, employee.ManagerID); err == nil {
			managerName = managerUser.FullName()
			managerEmail = managerUser.Email
		}
	}

	applications, err := s.leaves.ListByEmployee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get employee profile: %w", err)
	}
	notifications, err := s.notifier.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get employee profile: %w", err)
	}

	return &ports.EmployeeProfile{
		FullName:          user.FullName(),
		Email:             user.Email,
		Position:          employee.Position,
		JobTitle:          employee.JobTitle,
		DateHired:         employee.DateHired,
		ManagerName:       managerName,
		ManagerEmail:      managerEmail,
		TotalLeaveDays:    employee.TotalLeaveDaysEntitled,
		LeaveDaysTaken:    employee.LeaveDaysTaken,
		LeaveApplications: leaveViews(applications),
		Notifications:     notificationViews(notifications),
	}, nil
}

// UpdateProfile applies a partial update: provided fields overwrite, empty
// fields are left alone.
func (s *EmployeeService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateEmployeeProfileInput) error {
	employee, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
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
			return fmt.Errorf("update employee profile: %w", err)
		}
	}

	if in.Position != "" {
		employee.Position = in.Position
	}
	if in.JobTitle != "" {
		employee.JobTitle = in.JobTitle
	}
	if err := s.employees.Update(ctx, employee); err != nil {
		return fmt.Errorf("update employee profile: %w", err)
	}
	return nil
}

// ApplyForLeave creates a pending application and notifies the employee's
// manager. An employee without an assigned manager cannot apply; nothing is
// persisted in that case.
func (s *EmployeeService) ApplyForLeave(ctx context.Context, userID string, in ports.ApplyLeaveInput) error {
	employee, err := s.employees.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if employee.ManagerID == "" {
		return domain.ErrNoManagerAssigned
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	managerUser, err := s.users.FindByID(ctx, employee.ManagerID)
	if err != nil {
		return err
	}

	application := &domain.LeaveApplication{
		ID:          uuid.NewString(),
		EmployeeID:  userID,
		StartDate:   domain.DateOnly(in.StartDate),
		EndDate:     domain.DateOnly(in.EndDate),
		Reason:      in.Reason,
		Status:      domain.LeavePending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.leaves.Create(ctx, application); err != nil {
		return fmt.Errorf("apply for leave: %w", err)
	}

	metrics.LeavesSubmittedTotal.Inc()
	s.log.Info().
		Str("employee_id", userID).
		Str("application_id", application.ID).
		Msg("leave application submitted")

	message := fmt.Sprintf("Leave application submitted by %s from %s to %s",
		user.FullName(),
		application.StartDate.Format("2006-01-02"),
		application.EndDate.Format("2006-01-02"),
	)
	return s.notifier.Notify(ctx, ports.NotifyInput{
		RecipientID:       employee.ManagerID,
		RecipientEmail:    managerUser.Email,
		Message:           message,
		Type:              domain.NotifyLeaveSubmitted,
		RelatedEntityID:   application.ID,
		RelatedEntityType: "LeaveApplication",
	})
}

// RecordSale inserts a sales record. The total amount is computed here, once,
// and never again: quantity and unit price are immutable afterwards.
func (s *EmployeeService) RecordSale(ctx context.Context, userID string, in ports.RecordSaleInput) error {
	if _, err := s.employees.FindByUserID(ctx, userID); err != nil {
		return err
	}

	record := &domain.SalesRecord{
		ID:           uuid.NewString(),
		EmployeeID:   userID,
		CustomerName: in.CustomerName,
		ProductName:  in.ProductName,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		TotalAmount:  in.UnitPrice.MulInt(in.Quantity),
		SaleDate:     domain.DateOnly(in.SaleDate),
		Notes:        in.Notes,
	}
	if err := s.sales.Create(ctx, record); err != nil {
		return fmt.Errorf("record sale: %w", err)
	}

	s.log.Info().Str("employee_id", userID).Str("sale_id", record.ID).Msg("sale recorded")
	return nil
}

// UpdateSale overwrites customer name, product name and notes when provided.
// The employee themself is notified, not the manager.
func (s *EmployeeService) UpdateSale(ctx context.Context, userID string, in ports.UpdateSaleInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	record, err := s.sales.FindByIDForEmployee(ctx, in.SalesRecordID, userID)
	if err != nil {
		return err
	}

	if in.CustomerName != "" {
		record.CustomerName = in.CustomerName
	}
	if in.ProductName != "" {
		record.ProductName = in.ProductName
	}
	if in.Notes != "" {
		record.Notes = in.Notes
	}
	if err := s.sales.UpdateDetails(ctx, record); err != nil {
		return fmt.Errorf("update sale: %w", err)
	}

	message := fmt.Sprintf("Sales record updated for %s on %s",
		user.FullName(), record.SaleDate.Format("2006-01-02"))
	return s.notifier.Notify(ctx, ports.NotifyInput{
		RecipientID:       userID,
		RecipientEmail:    user.Email,
		Message:           message,
		Type:              domain.NotifyNewSalesRecord,
		RelatedEntityID:   record.ID,
		RelatedEntityType: "SalesRecord",
	})
}

func (s *EmployeeService) ListSales(ctx context.Context, userID string) ([]ports.SaleView, error) {
	if _, err := s.employees.FindByUserID(ctx, userID); err != nil {
		return nil, err
	}
	records, err := s.sales.ListByEmployee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	views := make([]ports.SaleView, 0, len(records))
	for _, r := range records {
		views = append(views, saleView(r))
	}
	return views, nil
}

func saleView(r *domain.SalesRecord) ports.SaleView {
	return ports.SaleView{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		ProductName:  r.ProductName,
		Quantity:     r.Quantity,
		UnitPrice:    r.UnitPrice,
		TotalAmount:  r.TotalAmount,
		SaleDate:     r.SaleDate,
		Notes:        r.Notes,
	}
}

func leaveViews(apps []*domain.LeaveApplication) []ports.LeaveApplicationView {
	views := make([]ports.LeaveApplicationView, 0, len(apps))
	for _, la := range apps {
		views = append(views, ports.LeaveApplicationView{
			ID:        la.ID,
			StartDate: la.StartDate,
			EndDate:   la.EndDate,
			Reason:    la.Reason,
			Status:    string(la.Status),
		})
	}
	return views
}

func notificationViews(ns []*domain.Notification) []ports.NotificationView {
	views := make([]ports.NotificationView, 0, len(ns))
	for _, n := range ns {
		views = append(views, ports.NotificationView{Message: n.Message, IsRead: n.IsRead})
	}
	return views
}
