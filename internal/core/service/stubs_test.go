package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

// In-memory stub repositories shared by the service tests. They clone on the
// way in and out so tests cannot mutate stored state by accident.

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByRefreshToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.RefreshToken == token && token != "" {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SaveRefreshToken(_ context.Context, userID, token string, expiry time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	u.RefreshTokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateName(_ context.Context, userID, firstName, lastName string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FirstName, u.LastName = firstName, lastName
	return nil
}

func (r *stubUserRepo) seed(u *domain.User) {
	r.users[u.ID] = cloneUser(u)
}

// --- employees ---

type stubEmployeeRepo struct {
	employees map[string]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: make(map[string]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) error {
	if _, exists := r.employees[e.UserID]; exists {
		return domain.ErrProfileExists
	}
	r.employees[e.UserID] = cloneEmployee(e)
	return nil
}

func (r *stubEmployeeRepo) FindByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	if e, ok := r.employees[userID]; ok {
		return cloneEmployee(e), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := r.employees[e.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	r.employees[e.UserID] = cloneEmployee(e)
	return nil
}

func (r *stubEmployeeRepo) DecrementEntitlement(_ context.Context, userID string, days int) error {
	e, ok := r.employees[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	e.TotalLeaveDaysEntitled -= days
	return nil
}

func (r *stubEmployeeRepo) ListByManager(_ context.Context, managerID string) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.employees {
		if e.ManagerID == managerID {
			out = append(out, cloneEmployee(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubEmployeeRepo) ListWithEntitlement(_ context.Context) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for _, e := range r.employees {
		if e.TotalLeaveDaysEntitled > 0 {
			out = append(out, cloneEmployee(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubEmployeeRepo) seed(e *domain.Employee) {
	r.employees[e.UserID] = cloneEmployee(e)
}

// --- managers ---

type stubManagerRepo struct {
	managers map[string]*domain.Manager
}

func newStubManagerRepo() *stubManagerRepo {
	return &stubManagerRepo{managers: make(map[string]*domain.Manager)}
}

func cloneManager(m *domain.Manager) *domain.Manager {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func (r *stubManagerRepo) Create(_ context.Context, m *domain.Manager) error {
	if _, exists := r.managers[m.UserID]; exists {
		return domain.ErrProfileExists
	}
	r.managers[m.UserID] = cloneManager(m)
	return nil
}

func (r *stubManagerRepo) FindByUserID(_ context.Context, userID string) (*domain.Manager, error) {
	if m, ok := r.managers[userID]; ok {
		return cloneManager(m), nil
	}
	return nil, domain.ErrManagerNotFound
}

func (r *stubManagerRepo) Update(_ context.Context, m *domain.Manager) error {
	if _, ok := r.managers[m.UserID]; !ok {
		return domain.ErrManagerNotFound
	}
	r.managers[m.UserID] = cloneManager(m)
	return nil
}

func (r *stubManagerRepo) ListInactive(_ context.Context) ([]*domain.Manager, error) {
	var out []*domain.Manager
	for _, m := range r.managers {
		if !m.IsActive {
			out = append(out, cloneManager(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *stubManagerRepo) Activate(_ context.Context, userID string) error {
	m, ok := r.managers[userID]
	if !ok || m.IsActive {
		return domain.ErrManagerNotFound
	}
	m.IsActive = true
	return nil
}

func (r *stubManagerRepo) seed(m *domain.Manager) {
	r.managers[m.UserID] = cloneManager(m)
}

// --- leave applications ---

type stubLeaveRepo struct {
	applications map[string]*domain.LeaveApplication
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{applications: make(map[string]*domain.LeaveApplication)}
}

func cloneLeave(la *domain.LeaveApplication) *domain.LeaveApplication {
	if la == nil {
		return nil
	}
	clone := *la
	if la.ApprovedAt != nil {
		at := *la.ApprovedAt
		clone.ApprovedAt = &at
	}
	return &clone
}

func (r *stubLeaveRepo) Create(_ context.Context, la *domain.LeaveApplication) error {
	r.applications[la.ID] = cloneLeave(la)
	return nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id string) (*domain.LeaveApplication, error) {
	if la, ok := r.applications[id]; ok {
		return cloneLeave(la), nil
	}
	return nil, domain.ErrLeaveApplicationNotFound
}

func (r *stubLeaveRepo) Approve(_ context.Context, id, approverID string, at time.Time) (*domain.LeaveApplication, error) {
	la, ok := r.applications[id]
	if !ok || la.Status != domain.LeavePending {
		return nil, domain.ErrLeaveApplicationNotFound
	}
	la.Status = domain.LeaveApproved
	la.ApproverID = approverID
	la.ApprovedAt = &at
	return cloneLeave(la), nil
}

func (r *stubLeaveRepo) ListByEmployee(_ context.Context, employeeID string) ([]*domain.LeaveApplication, error) {
	var out []*domain.LeaveApplication
	for _, la := range r.applications {
		if la.EmployeeID == employeeID {
			out = append(out, cloneLeave(la))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeaveRepo) ListApprovedByEmployee(_ context.Context, employeeID string) ([]*domain.LeaveApplication, error) {
	var out []*domain.LeaveApplication
	for _, la := range r.applications {
		if la.EmployeeID == employeeID && la.Status == domain.LeaveApproved {
			out = append(out, cloneLeave(la))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeaveRepo) count() int {
	return len(r.applications)
}

// --- sales ---

type stubSalesRepo struct {
	records map[string]*domain.SalesRecord
}

func newStubSalesRepo() *stubSalesRepo {
	return &stubSalesRepo{records: make(map[string]*domain.SalesRecord)}
}

func cloneSale(sr *domain.SalesRecord) *domain.SalesRecord {
	if sr == nil {
		return nil
	}
	clone := *sr
	return &clone
}

func (r *stubSalesRepo) Create(_ context.Context, sr *domain.SalesRecord) error {
	r.records[sr.ID] = cloneSale(sr)
	return nil
}

func (r *stubSalesRepo) FindByIDForEmployee(_ context.Context, id, employeeID string) (*domain.SalesRecord, error) {
	if sr, ok := r.records[id]; ok && sr.EmployeeID == employeeID {
		return cloneSale(sr), nil
	}
	return nil, domain.ErrSalesRecordNotFound
}

func (r *stubSalesRepo) UpdateDetails(_ context.Context, sr *domain.SalesRecord) error {
	stored, ok := r.records[sr.ID]
	if !ok {
		return domain.ErrSalesRecordNotFound
	}
	stored.CustomerName = sr.CustomerName
	stored.ProductName = sr.ProductName
	stored.Notes = sr.Notes
	return nil
}

func (r *stubSalesRepo) ListByEmployee(_ context.Context, employeeID string) ([]*domain.SalesRecord, error) {
	var out []*domain.SalesRecord
	for _, sr := range r.records {
		if sr.EmployeeID == employeeID {
			out = append(out, cloneSale(sr))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- notifier recorder ---

type recordedNotification struct {
	ports.NotifyInput
}

type stubNotifier struct {
	sent []recordedNotification
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{}
}

func (n *stubNotifier) Notify(_ context.Context, in ports.NotifyInput) error {
	n.sent = append(n.sent, recordedNotification{NotifyInput: in})
	return nil
}

func (n *stubNotifier) List(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for i, rec := range n.sent {
		if rec.RecipientID != recipientID {
			continue
		}
		out = append(out, &domain.Notification{
			ID:          string(rune('a' + i)),
			RecipientID: rec.RecipientID,
			Message:     rec.Message,
			Type:        rec.Type,
		})
	}
	return out, nil
}

func (n *stubNotifier) lastFor(recipientID string) *recordedNotification {
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].RecipientID == recipientID {
			return &n.sent[i]
		}
	}
	return nil
}
