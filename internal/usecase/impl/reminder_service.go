package impl

import (
	"context"
	"log/slog"
	"time"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/pkg/errors"
)

const (
	reminderTitle   = "Appointment Reminder"
	reminderDayBody = "You have an appointment tomorrow!"
	reminderHrBody  = "You have an appointment in 1 hour!"
)

type reminderService struct {
	appointmentRepo  repository.AppointmentRepository
	subscriptionRepo repository.PushSubscriptionRepository
	sender           service.PushSender
	windowMinutes    int
	sendTimeout      time.Duration
	logger           *slog.Logger
}

// NewReminderService creates a new reminder scan service instance.
func NewReminderService(
	appointmentRepo repository.AppointmentRepository,
	subscriptionRepo repository.PushSubscriptionRepository,
	sender service.PushSender,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.ReminderUsecase {
	sendTimeout := 10 * time.Second
	if cfg.Push != nil && cfg.Push.SendTimeout > 0 {
		sendTimeout = cfg.Push.SendTimeout
	}

	return &reminderService{
		appointmentRepo:  appointmentRepo,
		subscriptionRepo: subscriptionRepo,
		sender:           sender,
		windowMinutes:    cfg.Reminders.WindowMinutes,
		sendTimeout:      sendTimeout,
		logger:           logger,
	}
}

// Run scans both reminder offsets and delivers push notifications.
// Repository read failures abort the scan; everything downstream of a
// claimed flag is fire-and-forget.
func (s *reminderService) Run(ctx context.Context, now time.Time) (*usecase.ReminderResult, error) {
	result := &usecase.ReminderResult{}

	dayDue, err := s.findDayReminders(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, appointment := range dayDue {
		result.Total++
		result.Sent += s.process(ctx, appointment, entity.ReminderOneDay, now)
	}

	hourDue, err := s.findHourReminders(ctx, now)
	if err != nil {
		return nil, err
	}
	for _, appointment := range hourDue {
		result.Total++
		result.Sent += s.process(ctx, appointment, entity.ReminderOneHour, now)
	}

	s.logger.Info("Reminder scan finished",
		slog.Int("sent", result.Sent),
		slog.Int("total", result.Total),
	)

	return result, nil
}

// findDayReminders queries the 24-hour offset. The window collapses to
// whole dates before filtering, so in practice every unsent confirmed
// appointment on tomorrow's date is due. Kept as the original job
// behaved; the date-level granularity is pinned by tests.
func (s *reminderService) findDayReminders(ctx context.Context, now time.Time) ([]*entity.Appointment, error) {
	window := time.Duration(s.windowMinutes) * time.Minute
	target := now.Add(24 * time.Hour)
	fromDate := target.Add(-window).Format("2006-01-02")
	toDate := target.Add(window).Format("2006-01-02")

	due, err := s.appointmentRepo.FindDueDayReminders(ctx, fromDate, toDate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find due day reminders")
	}

	return due, nil
}

// findHourReminders queries the 1-hour offset: today's appointments whose
// time string lands inside [now+55m, now+65m]. The minute filter runs
// here, as the original job did client-side.
func (s *reminderService) findHourReminders(ctx context.Context, now time.Time) ([]*entity.Appointment, error) {
	pending, err := s.appointmentRepo.FindPendingHourReminders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find pending hour reminders")
	}

	window := time.Duration(s.windowMinutes) * time.Minute
	target := now.Add(time.Hour)
	today := now.Format("2006-01-02")
	lower := target.Add(-window).Format("15:04")
	upper := target.Add(window).Format("15:04")

	due := make([]*entity.Appointment, 0, len(pending))
	for _, appointment := range pending {
		if appointment.Date != today {
			continue
		}
		if appointment.Time >= lower && appointment.Time <= upper {
			due = append(due, appointment)
		}
	}

	return due, nil
}

// process handles one due appointment and returns the number of
// subscriptions successfully delivered to.
func (s *reminderService) process(ctx context.Context, appointment *entity.Appointment, offset entity.ReminderOffset, now time.Time) int {
	subscriptions, err := s.subscriptionRepo.FindByUser(ctx, appointment.UserID)
	if err != nil {
		s.logger.Error("Failed to load subscriptions for reminder",
			slog.Int64("appointmentID", appointment.ID),
			slog.String("error", err.Error()),
		)

		return 0
	}

	// No subscriptions: skip silently and leave the flag untouched so a
	// later subscription still gets this reminder.
	if len(subscriptions) == 0 {
		return 0
	}

	// Claim the flag before sending. A lost claim means an overlapping
	// run owns delivery for this appointment.
	claimed, err := s.appointmentRepo.ClaimReminder(ctx, appointment.ID, offset, now)
	if err != nil {
		s.logger.Error("Failed to claim reminder",
			slog.Int64("appointmentID", appointment.ID),
			slog.String("offset", string(offset)),
			slog.String("error", err.Error()),
		)

		return 0
	}
	if !claimed {
		return 0
	}

	body := reminderDayBody
	if offset == entity.ReminderOneHour {
		body = reminderHrBody
	}
	payload := &service.PushPayload{
		Title: reminderTitle,
		Body:  body,
	}

	delivered := 0
	for _, subscription := range subscriptions {
		if s.deliver(ctx, subscription, payload, appointment.ID) {
			delivered++
		}
	}

	return delivered
}

// deliver sends to one subscription, pruning rows whose endpoint is gone.
// Reports whether the send succeeded.
func (s *reminderService) deliver(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload, appointmentID int64) bool {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	err := s.sender.Send(sendCtx, subscription, payload)
	if err == nil {
		return true
	}

	if errors.Is(err, service.ErrSubscriptionGone) {
		if deleteErr := s.subscriptionRepo.DeleteByEndpoint(ctx, subscription.Endpoint); deleteErr != nil &&
			!errors.Is(deleteErr, repository.ErrSubscriptionNotFound) {
			s.logger.Error("Failed to prune gone subscription",
				slog.String("endpoint", subscription.Endpoint),
				slog.String("error", deleteErr.Error()),
			)

			return false
		}

		s.logger.Info("Pruned gone subscription",
			slog.String("endpoint", subscription.Endpoint),
		)

		return false
	}

	s.logger.Error("Reminder delivery failed",
		slog.Int64("appointmentID", appointmentID),
		slog.String("endpoint", subscription.Endpoint),
		slog.String("error", err.Error()),
	)

	return false
}
