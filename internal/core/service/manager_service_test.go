package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/staffhub/staffhub-api/internal/core/domain"
)

type managerFixture struct {
	svc       *ManagerService
	users     *stubUserRepo
	employees *stubEmployeeRepo
	managers  *stubManagerRepo
	leaves    *stubLeaveRepo
	sales     *stubSalesRepo
	notifier  *stubNotifier
}

func newManagerFixture() *managerFixture {
	f := &managerFixture{
		users:     newStubUserRepo(),
		employees: newStubEmployeeRepo(),
		managers:  newStubManagerRepo(),
		leaves:    newStubLeaveRepo(),
		sales:     newStubSalesRepo(),
		notifier:  newStubNotifier(),
	}
	f.svc = NewManagerService(f.users, f.employees, f.managers, f.leaves, f.sales, f.notifier, testLogger())
	return f
}

func (f *managerFixture) seedManager(id, first, last, email string, active bool) {
	f.users.seed(&domain.User{ID: id, FirstName: first, LastName: last, Email: email})
	f.managers.seed(&domain.Manager{UserID: id, Department: "Sales", IsActive: active})
}

func (f *managerFixture) seedEmployee(id, first, last, email, managerID string) {
	f.users.seed(&domain.User{ID: id, FirstName: first, LastName: last, Email: email})
	f.employees.seed(&domain.Employee{
		UserID:                 id,
		Position:               "Account Executive",
		ManagerID:              managerID,
		TotalLeaveDaysEntitled: domain.DefaultLeaveEntitlement,
	})
}

func (f *managerFixture) seedPendingLeave(employeeID string, start, end time.Time) string {
	id := uuid.NewString()
	_ = f.leaves.Create(context.Background(), &domain.LeaveApplication{
		ID:          id,
		EmployeeID:  employeeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "trip",
		Status:      domain.LeavePending,
		SubmittedAt: time.Now().UTC(),
	})
	return id
}

func TestManagerService_ApproveLeave(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")
	// Three calendar days requested.
	id := f.seedPendingLeave("u1",
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))

	if err := f.svc.ApproveLeave(context.Background(), "m1", id); err != nil {
		t.Fatalf("approve leave failed: %v", err)
	}

	approved, _ := f.leaves.FindByID(context.Background(), id)
	if approved.Status != domain.LeaveApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if approved.ApproverID != "m1" {
		t.Fatalf("expected approver m1, got %q", approved.ApproverID)
	}
	if approved.ApprovedAt == nil {
		t.Fatalf("expected approval timestamp")
	}

	// Entitlement drops by exactly one day, not by the three-day span.
	employee, _ := f.employees.FindByUserID(context.Background(), "u1")
	if employee.TotalLeaveDaysEntitled != domain.DefaultLeaveEntitlement-1 {
		t.Fatalf("expected entitlement %d, got %d",
			domain.DefaultLeaveEntitlement-1, employee.TotalLeaveDaysEntitled)
	}

	sent := f.notifier.lastFor("u1")
	if sent == nil {
		t.Fatalf("expected a notification for the employee")
	}
	if sent.Type != domain.NotifyLeaveApproved {
		t.Fatalf("unexpected notification type: %s", sent.Type)
	}
	want := "Your leave application from 2025-01-10 to 2025-01-12 has been approved."
	if sent.Message != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", sent.Message, want)
	}
}

func TestManagerService_ApproveLeave_ForeignReportInvisible(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")
	id := f.seedPendingLeave("u1", time.Now(), time.Now())

	// A manager who does not own the report sees not-found, not forbidden.
	err := f.svc.ApproveLeave(context.Background(), "m2", id)
	if !errors.Is(err, domain.ErrLeaveApplicationNotFound) {
		t.Fatalf("expected ErrLeaveApplicationNotFound, got %v", err)
	}

	employee, _ := f.employees.FindByUserID(context.Background(), "u1")
	if employee.TotalLeaveDaysEntitled != domain.DefaultLeaveEntitlement {
		t.Fatalf("entitlement must be untouched, got %d", employee.TotalLeaveDaysEntitled)
	}
}

func TestManagerService_ApproveLeave_DoubleApproval(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")
	id := f.seedPendingLeave("u1", time.Now(), time.Now())

	if err := f.svc.ApproveLeave(context.Background(), "m1", id); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	if err := f.svc.ApproveLeave(context.Background(), "m1", id); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// The entitlement drops once, never twice.
	employee, _ := f.employees.FindByUserID(context.Background(), "u1")
	if employee.TotalLeaveDaysEntitled != domain.DefaultLeaveEntitlement-1 {
		t.Fatalf("expected entitlement %d, got %d",
			domain.DefaultLeaveEntitlement-1, employee.TotalLeaveDaysEntitled)
	}
}

func TestManagerService_ListUnpromoted_InactiveCallerGetsEmptyList(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", false)
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", false)

	profiles, err := f.svc.ListUnpromoted(context.Background(), "m1")
	if err != nil {
		t.Fatalf("list unpromoted failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("inactive caller must get an empty list, got %d entries", len(profiles))
	}
}

func TestManagerService_ListUnpromoted(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", false)
	f.seedManager("m3", "Pia", "Rossi", "pia@example.com", false)

	profiles, err := f.svc.ListUnpromoted(context.Background(), "m1")
	if err != nil {
		t.Fatalf("list unpromoted failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 inactive managers, got %d", len(profiles))
	}
	for _, p := range profiles {
		if p.IsActive {
			t.Fatalf("active manager leaked into the unpromoted list: %+v", p)
		}
	}
}

func TestManagerService_Promote(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", false)

	if err := f.svc.Promote(context.Background(), "omar@example.com"); err != nil {
		t.Fatalf("promote failed: %v", err)
	}

	promoted, _ := f.managers.FindByUserID(context.Background(), "m2")
	if !promoted.IsActive {
		t.Fatalf("expected m2 to be active")
	}

	sent := f.notifier.lastFor("m2")
	if sent == nil {
		t.Fatalf("expected a notification for the promoted manager")
	}
	if sent.Type != domain.NotifyAccountActivated {
		t.Fatalf("unexpected notification type: %s", sent.Type)
	}
	if sent.Message != "Your manager profile has been activated." {
		t.Fatalf("unexpected message: %q", sent.Message)
	}
}

func TestManagerService_Promote_AlreadyActive(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", true)

	// Second promotion of the same profile loses: single-winner semantics.
	err := f.svc.Promote(context.Background(), "omar@example.com")
	if !errors.Is(err, domain.ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
	if f.notifier.lastFor("m2") != nil {
		t.Fatalf("no notification may be sent for a losing promotion")
	}
}

func TestManagerService_Promote_UnknownEmail(t *testing.T) {
	f := newManagerFixture()

	err := f.svc.Promote(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrManagerNotFound) {
		t.Fatalf("expected ErrManagerNotFound, got %v", err)
	}
}

func TestManagerService_GetProfile_WithSubordinates(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")
	f.seedEmployee("u2", "Rita", "Cole", "rita@example.com", "m1")
	f.seedPendingLeave("u1", time.Now(), time.Now())

	profile, err := f.svc.GetProfile(context.Background(), "m1")
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if len(profile.Subordinates) != 2 {
		t.Fatalf("expected 2 subordinates, got %d", len(profile.Subordinates))
	}
	if len(profile.Subordinates[0].LeaveApplications) != 1 {
		t.Fatalf("expected u1's application in the view")
	}
}

func TestManagerService_GetSubordinateProfile(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedManager("m2", "Omar", "Diaz", "omar@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")

	profile, err := f.svc.GetSubordinateProfile(context.Background(), "m1", "noel@example.com")
	if err != nil {
		t.Fatalf("get subordinate failed: %v", err)
	}
	if profile.FullName != "Noel Kim" {
		t.Fatalf("unexpected subordinate: %q", profile.FullName)
	}

	// Another manager cannot reach the same report.
	if _, err := f.svc.GetSubordinateProfile(context.Background(), "m2", "noel@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestManagerService_ListTeamSales(t *testing.T) {
	f := newManagerFixture()
	f.seedManager("m1", "Mara", "Lopez", "mara@example.com", true)
	f.seedEmployee("u1", "Noel", "Kim", "noel@example.com", "m1")
	f.seedEmployee("u2", "Rita", "Cole", "rita@example.com", "m1")

	price, _ := domain.ParseMoney("10.00")
	_ = f.sales.Create(context.Background(), &domain.SalesRecord{
		ID: "s1", EmployeeID: "u1", CustomerName: "Acme", ProductName: "Widget",
		Quantity: 3, UnitPrice: price, TotalAmount: price.MulInt(3),
	})
	_ = f.sales.Create(context.Background(), &domain.SalesRecord{
		ID: "s2", EmployeeID: "u2", CustomerName: "Globex", ProductName: "Gadget",
		Quantity: 1, UnitPrice: price, TotalAmount: price,
	})

	views, err := f.svc.ListTeamSales(context.Background(), "m1")
	if err != nil {
		t.Fatalf("list team sales failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(views))
	}
	names := map[string]bool{}
	for _, v := range views {
		names[v.EmployeeName] = true
	}
	if !names["Noel Kim"] || !names["Rita Cole"] {
		t.Fatalf("expected both subordinates' names, got %v", names)
	}
}
