// Package worker holds background jobs that run on their own schedule,
// decoupled from request handling.
package worker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/staffhub/staffhub-api/internal/api/metrics"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
)

const (
	scanLockName = "leave_scan"
	// approachWindowDays is how far ahead the scan looks for approved leave.
	approachWindowDays = 7
)

// Lock provides cross-instance mutual exclusion so only one scan runs at a
// time across the deployment.
type Lock interface {
	Acquire(ctx context.Context, name string) (bool, error)
	Release(ctx context.Context, name string) error
}

// Clock makes the scan testable against fixed dates.
type Clock func() time.Time

// LeaveScanner periodically notifies employees whose approved leave falls
// within the next week. Each run re-notifies for dates already announced by a
// previous run: no de-duplication state is kept between runs.
type LeaveScanner struct {
	employees ports.EmployeeRepository
	users     ports.UserRepository
	leaves    ports.LeaveRepository
	notifier  ports.Notifier
	lock      Lock
	interval  time.Duration
	now       Clock
	log       zerolog.Logger
}

func NewLeaveScanner(
	employees ports.EmployeeRepository,
	users ports.UserRepository,
	leaves ports.LeaveRepository,
	notifier ports.Notifier,
	lock Lock,
	interval time.Duration,
	log zerolog.Logger,
) *LeaveScanner {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &LeaveScanner{
		employees: employees,
		users:     users,
		leaves:    leaves,
		notifier:  notifier,
		lock:      lock,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *LeaveScanner) SetClock(c Clock) { s.now = c }

// Run executes the scan on every tick until ctx is cancelled. A failing run
// is logged and the scanner simply waits for the next tick.
func (s *LeaveScanner) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("leave scanner started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *LeaveScanner) runOnce(ctx context.Context) {
	held, err := s.lock.Acquire(ctx, scanLockName)
	if err != nil {
		metrics.LeaveScanRunsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("leave scan lock acquisition failed")
		return
	}
	if !held {
		metrics.LeaveScanRunsTotal.WithLabelValues("skipped").Inc()
		s.log.Debug().Msg("leave scan already running elsewhere, skipping")
		return
	}
	defer func() {
		if err := s.lock.Release(ctx, scanLockName); err != nil {
			s.log.Warn().Err(err).Msg("leave scan lock release failed")
		}
	}()

	if err := s.Scan(ctx); err != nil {
		metrics.LeaveScanRunsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("leave scan failed")
		return
	}
	metrics.LeaveScanRunsTotal.WithLabelValues("ok").Inc()
}

// Scan notifies every employee with remaining entitlement whose approved
// leave has days inside [today, today+7]. Exactly one notification is emitted
// per employee per run, enumerating all matching dates.
func (s *LeaveScanner) Scan(ctx context.Context) error {
	employees, err := s.employees.ListWithEntitlement(ctx)
	if err != nil {
		return fmt.Errorf("leave scan: %w", err)
	}

	today := domain.DateOnly(s.now())
	windowEnd := today.AddDate(0, 0, approachWindowDays)

	for _, employee := range employees {
		approved, err := s.leaves.ListApprovedByEmployee(ctx, employee.UserID)
		if err != nil {
			return fmt.Errorf("leave scan: %w", err)
		}

		upcoming := upcomingDates(approved, today, windowEnd)
		if len(upcoming) == 0 {
			continue
		}

		user, err := s.users.FindByID(ctx, employee.UserID)
		if err != nil {
			return fmt.Errorf("leave scan: %w", err)
		}

		s.log.Info().Str("email", user.Email).Int("days", len(upcoming)).
			Msg("notifying employee about approaching leave")

		if err := s.notifier.Notify(ctx, ports.NotifyInput{
			RecipientID:       employee.UserID,
			RecipientEmail:    user.Email,
			Message:           approachingMessage(upcoming),
			Type:              domain.NotifyLeaveApproaching,
			RelatedEntityType: "LeaveApplicationApproaching",
		}); err != nil {
			return fmt.Errorf("leave scan: %w", err)
		}
	}
	return nil
}

// upcomingDates expands every approved span into calendar days, keeps the
// ones inside [today, windowEnd] and returns them sorted and de-duplicated.
func upcomingDates(approved []*domain.LeaveApplication, today, windowEnd time.Time) []time.Time {
	seen := make(map[time.Time]struct{})
	var dates []time.Time
	for _, la := range approved {
		for _, day := range domain.ExpandLeaveDays(la.StartDate, la.EndDate) {
			if day.Before(today) || day.After(windowEnd) {
				continue
			}
			if _, dup := seen[day]; dup {
				continue
			}
			seen[day] = struct{}{}
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// approachingMessage renders the human-readable date list, e.g.
// "Friday (Jan 10), Saturday (Jan 11)".
func approachingMessage(dates []time.Time) string {
	formatted := make([]string, 0, len(dates))
	for _, d := range dates {
		formatted = append(formatted, d.Format("Monday (Jan 02)"))
	}
	joined := strings.Join(formatted, ", ")
	if len(dates) == 1 {
		return fmt.Sprintf("You have approved leave on %s.", joined)
	}
	return fmt.Sprintf("You have approved leave scheduled on the following days: %s.", joined)
}
