package impl

import (
	"context"
	"time"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) CreateIfAbsent(ctx context.Context, appointment *entity.Appointment) (bool, error) {
	args := m.Called(ctx, appointment)

	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindByCalEventUID(ctx context.Context, calEventUID string) (*entity.Appointment, error) {
	args := m.Called(ctx, calEventUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) ListUpcoming(ctx context.Context, fromDate string) ([]*repository.AppointmentWithDetails, error) {
	args := m.Called(ctx, fromDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*repository.AppointmentWithDetails), args.Error(1)
}

func (m *mockAppointmentRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next entity.AppointmentStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)

	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepository) CancelByCalEventUID(ctx context.Context, calEventUID string) error {
	args := m.Called(ctx, calEventUID)

	return args.Error(0)
}

func (m *mockAppointmentRepository) FindDueDayReminders(ctx context.Context, fromDate, toDate string) ([]*entity.Appointment, error) {
	args := m.Called(ctx, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindPendingHourReminders(ctx context.Context) ([]*entity.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) ClaimReminder(ctx context.Context, id int64, offset entity.ReminderOffset, at time.Time) (bool, error) {
	args := m.Called(ctx, id, offset, at)

	return args.Bool(0), args.Error(1)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	args := m.Called(ctx, profile)

	return args.Error(0)
}

type mockServiceRepository struct {
	mock.Mock
}

func (m *mockServiceRepository) ListServices(ctx context.Context) ([]*entity.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Service), args.Error(1)
}

func (m *mockServiceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Service), args.Error(1)
}

type mockPushSubscriptionRepository struct {
	mock.Mock
}

func (m *mockPushSubscriptionRepository) Upsert(ctx context.Context, subscription *entity.PushSubscription) error {
	args := m.Called(ctx, subscription)

	return args.Error(0)
}

func (m *mockPushSubscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PushSubscription), args.Error(1)
}

func (m *mockPushSubscriptionRepository) ListAll(ctx context.Context) ([]*entity.PushSubscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PushSubscription), args.Error(1)
}

func (m *mockPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)

	return args.Error(0)
}

type mockContactMessageRepository struct {
	mock.Mock
}

func (m *mockContactMessageRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}

type mockBookingScheduler struct {
	mock.Mock
}

func (m *mockBookingScheduler) CancelBooking(ctx context.Context, eventUID string) error {
	args := m.Called(ctx, eventUID)

	return args.Error(0)
}

func (m *mockBookingScheduler) CancelBookingWithKey(ctx context.Context, eventUID, apiKey string) error {
	args := m.Called(ctx, eventUID, apiKey)

	return args.Error(0)
}

type mockPushSender struct {
	mock.Mock
}

func (m *mockPushSender) Send(ctx context.Context, subscription *entity.PushSubscription, payload *service.PushPayload) error {
	args := m.Called(ctx, subscription, payload)

	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendContactNotification(ctx context.Context, message *entity.ContactMessage) error {
	args := m.Called(ctx, message)

	return args.Error(0)
}
