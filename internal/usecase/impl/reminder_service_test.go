package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReminderFixture(t *testing.T) (usecase.ReminderUsecase, *mockAppointmentRepository, *mockPushSubscriptionRepository, *mockPushSender) {
	t.Helper()

	appointmentRepo := new(mockAppointmentRepository)
	subscriptionRepo := new(mockPushSubscriptionRepository)
	sender := new(mockPushSender)

	cfg := &config.Config{}
	cfg.Reminders.WindowMinutes = 5
	cfg.Push = &config.PushConfig{SendTimeout: time.Second}

	svc := NewReminderService(appointmentRepo, subscriptionRepo, sender, cfg, slog.New(slog.DiscardHandler))

	return svc, appointmentRepo, subscriptionRepo, sender
}

func dayAppointment(id int64, userID uuid.UUID, start time.Time) *entity.Appointment {
	appointment := &entity.Appointment{
		ID:        id,
		UserID:    userID,
		StartTime: start,
		Status:    entity.StatusConfirmed,
	}
	appointment.SyncDateTime()

	return appointment
}

func TestReminderService_Run_DayReminder(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	appointment := dayAppointment(1, userID, now.Add(24*time.Hour))
	subscription := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/abc", Provider: entity.ProviderWebPush}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, "2026-09-15", "2026-09-15").
		Return([]*entity.Appointment{appointment}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{subscription}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(1), entity.ReminderOneDay, now).
		Return(true, nil)
	sender.On("Send", mock.Anything, subscription, mock.MatchedBy(func(p *service.PushPayload) bool {
		return p.Body == "You have an appointment tomorrow!"
	})).Return(nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Total)
	sender.AssertExpectations(t)
}

func TestReminderService_Run_NoSubscriptionsLeavesFlagUntouched(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	appointment := dayAppointment(2, userID, now.Add(24*time.Hour))

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Appointment{appointment}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{}, nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Total)

	appointmentRepo.AssertNotCalled(t, "ClaimReminder",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_Run_LostClaimSkipsSend(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	appointment := dayAppointment(3, userID, now.Add(24*time.Hour))
	subscription := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/abc"}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Appointment{appointment}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{subscription}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(3), entity.ReminderOneDay, now).
		Return(false, nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_Run_HourReminderWindow(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)
	userID := uuid.New()

	inWindow := dayAppointment(4, userID, now.Add(time.Hour))               // 14:00, inside [13:55, 14:05]
	outOfWindow := dayAppointment(5, userID, now.Add(3*time.Hour))          // 16:00
	wrongDay := dayAppointment(6, userID, now.Add(24*time.Hour+time.Hour))  // tomorrow
	subscription := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/abc"}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Appointment{}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{inWindow, outOfWindow, wrongDay}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{subscription}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(4), entity.ReminderOneHour, now).
		Return(true, nil)
	sender.On("Send", mock.Anything, subscription, mock.MatchedBy(func(p *service.PushPayload) bool {
		return p.Body == "You have an appointment in 1 hour!"
	})).Return(nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Total)
	sender.AssertExpectations(t)
}

func TestReminderService_Run_PrunesGoneSubscription(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	appointment := dayAppointment(7, userID, now.Add(24*time.Hour))
	subscription := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/gone"}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Appointment{appointment}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{subscription}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(7), entity.ReminderOneDay, now).
		Return(true, nil)
	sender.On("Send", mock.Anything, subscription, mock.Anything).
		Return(service.ErrSubscriptionGone)
	subscriptionRepo.On("DeleteByEndpoint", mock.Anything, "https://push/gone").
		Return(nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	// A gone endpoint is a failed delivery: pruned, not counted.
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Total)
	subscriptionRepo.AssertExpectations(t)
}

func TestReminderService_Run_SentCountsPerDelivery(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	now := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	appointment := dayAppointment(8, userID, now.Add(24*time.Hour))
	okSub := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/ok"}
	badSub := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/bad"}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return([]*entity.Appointment{appointment}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{okSub, badSub}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(8), entity.ReminderOneDay, now).
		Return(true, nil)
	sender.On("Send", mock.Anything, okSub, mock.Anything).Return(nil)
	sender.On("Send", mock.Anything, badSub, mock.Anything).Return(errors.New("endpoint timeout"))

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	// One appointment due, two subscriptions, one delivery landed.
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Total)
	sender.AssertExpectations(t)
}

func TestReminderService_Run_DayWindowSpansTwoDatesNearMidnight(t *testing.T) {
	svc, appointmentRepo, subscriptionRepo, sender := newReminderFixture(t)

	// 23:58 with a ±5m window: [tomorrow 23:53, day-after 00:03]
	// collapses to whole dates, so the query covers two full days and an
	// appointment 33 hours out is treated as due. Day-level coarseness,
	// as the job has always behaved.
	now := time.Date(2026, 9, 14, 23, 58, 0, 0, time.UTC)
	userID := uuid.New()
	farOff := dayAppointment(9, userID, time.Date(2026, 9, 16, 9, 0, 0, 0, time.UTC))
	subscription := &entity.PushSubscription{UserID: userID, Endpoint: "https://push/abc"}

	appointmentRepo.On("FindDueDayReminders", mock.Anything, "2026-09-15", "2026-09-16").
		Return([]*entity.Appointment{farOff}, nil)
	appointmentRepo.On("FindPendingHourReminders", mock.Anything).
		Return([]*entity.Appointment{}, nil)
	subscriptionRepo.On("FindByUser", mock.Anything, userID).
		Return([]*entity.PushSubscription{subscription}, nil)
	appointmentRepo.On("ClaimReminder", mock.Anything, int64(9), entity.ReminderOneDay, now).
		Return(true, nil)
	sender.On("Send", mock.Anything, subscription, mock.Anything).Return(nil)

	result, err := svc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Total)
	appointmentRepo.AssertExpectations(t)
}

func TestReminderService_Run_RepositoryFailureAborts(t *testing.T) {
	svc, appointmentRepo, _, _ := newReminderFixture(t)

	appointmentRepo.On("FindDueDayReminders", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := svc.Run(context.Background(), time.Now())
	require.Error(t, err)
}
