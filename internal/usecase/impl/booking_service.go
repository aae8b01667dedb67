package impl

import (
	"context"
	"log/slog"
	"strings"

	"barbershop/config"
	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/usecase"
	"barbershop/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type bookingService struct {
	appointmentRepo repository.AppointmentRepository
	profileRepo     repository.ProfileRepository
	matcher         *serviceMatcher
	logger          *slog.Logger
}

// NewBookingService creates a new booking ingestion service instance.
func NewBookingService(
	appointmentRepo repository.AppointmentRepository,
	profileRepo repository.ProfileRepository,
	serviceRepo repository.ServiceRepository,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return &bookingService{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		matcher:         newServiceMatcher(serviceRepo, cfg.Booking.DefaultService, logger),
		logger:          logger,
	}
}

// Ingest creates a confirmed appointment from the event. The unique
// constraint on the event uid absorbs webhook replays: a conflicting
// insert returns the already-stored appointment without error.
func (s *bookingService) Ingest(ctx context.Context, event *usecase.BookingEvent) (*entity.Appointment, bool, error) {
	startTime, err := util.ParseFlexibleTime(event.StartTime)
	if err != nil {
		return nil, false, domainerrors.ErrInvalidStartTime.WrapMessage(err.Error())
	}

	userID, err := s.resolveUser(ctx, event)
	if err != nil {
		return nil, false, err
	}

	matched, err := s.matcher.Match(ctx, event.Title)
	if err != nil {
		return nil, false, err
	}

	calEventUID := event.CalEventUID
	if strings.TrimSpace(calEventUID) == "" {
		calEventUID = uuid.NewString()
	}

	appointment := &entity.Appointment{
		UserID:          userID,
		ServiceID:       &matched.ID,
		ServiceName:     event.Title,
		CalEventUID:     calEventUID,
		StartTime:       startTime,
		Status:          entity.StatusConfirmed,
		PaymentStatus:   event.PaymentStatus,
		StripeSessionID: event.StripeSessionID,
		AmountPaid:      event.AmountPaid,
	}
	if event.EndTime != nil {
		if endTime, endErr := util.ParseFlexibleTime(event.EndTime); endErr == nil {
			appointment.EndTime = &endTime
		}
	}
	appointment.SyncDateTime()

	created, err := s.appointmentRepo.CreateIfAbsent(ctx, appointment)
	if err != nil {
		return nil, false, err
	}

	if !created {
		existing, findErr := s.appointmentRepo.FindByCalEventUID(ctx, calEventUID)
		if findErr != nil {
			return nil, false, errors.Wrap(findErr, "failed to load replayed appointment")
		}

		s.logger.Info("Booking event replayed",
			slog.String("calEventUID", calEventUID),
			slog.Int64("appointmentID", existing.ID),
		)

		return existing, false, nil
	}

	s.logger.Info("Booking ingested",
		slog.String("calEventUID", calEventUID),
		slog.Int64("appointmentID", appointment.ID),
		slog.String("service", matched.Name),
		slog.String("date", appointment.Date),
		slog.String("time", appointment.Time),
	)

	return appointment, true, nil
}

// CancelByEventUID marks the local appointment cancelled for a
// scheduler-originated cancellation; the scheduler already owns the
// source of truth, so no outbound call is made.
func (s *bookingService) CancelByEventUID(ctx context.Context, calEventUID string) error {
	if err := s.appointmentRepo.CancelByCalEventUID(ctx, calEventUID); err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return domainerrors.ErrAppointmentNotFound
		}

		return err
	}

	s.logger.Info("Booking cancelled by scheduler",
		slog.String("calEventUID", calEventUID),
	)

	return nil
}

// resolveUser picks the attendee: an explicit user id wins, otherwise
// the profile is looked up by email.
func (s *bookingService) resolveUser(ctx context.Context, event *usecase.BookingEvent) (uuid.UUID, error) {
	if event.UserID != uuid.Nil {
		return event.UserID, nil
	}

	if strings.TrimSpace(event.AttendeeEmail) == "" {
		return uuid.Nil, domainerrors.ErrUserNotFound.WrapMessage("booking event carries no attendee")
	}

	profile, err := s.profileRepo.FindByEmail(ctx, event.AttendeeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return uuid.Nil, domainerrors.ErrUserNotFound.WrapMessage("no profile for " + event.AttendeeEmail)
		}

		return uuid.Nil, errors.Wrap(err, "failed to resolve attendee profile")
	}

	return profile.ID, nil
}
