package impl

import (
	"context"
	"log/slog"
	"time"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/domain/service"
	"barbershop/internal/usecase"

	"github.com/pkg/errors"
)

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	scheduler       service.BookingScheduler
	logger          *slog.Logger
}

// NewAppointmentService creates a new appointment management service instance.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	scheduler service.BookingScheduler,
	logger *slog.Logger,
) usecase.AppointmentUsecase {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		scheduler:       scheduler,
		logger:          logger,
	}
}

// ListUpcoming retrieves appointments from today onward with their
// catalog entry and owner profile.
func (s *appointmentService) ListUpcoming(ctx context.Context) ([]*repository.AppointmentWithDetails, error) {
	today := time.Now().Format("2006-01-02")

	details, err := s.appointmentRepo.ListUpcoming(ctx, today)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming appointments")
	}

	return details, nil
}

// Complete transitions a confirmed appointment to completed.
func (s *appointmentService) Complete(ctx context.Context, id int64) error {
	if _, err := s.findAppointment(ctx, id); err != nil {
		return err
	}

	updated, err := s.appointmentRepo.UpdateStatusIfCurrent(ctx, id, entity.StatusConfirmed, entity.StatusCompleted)
	if err != nil {
		return err
	}
	if !updated {
		return domainerrors.ErrInvalidTransition.WrapMessage("appointment is not confirmed")
	}

	s.logger.Info("Appointment completed", slog.Int64("appointmentID", id))

	return nil
}

// Cancel cancels a confirmed appointment. The scheduler is called before
// any local change; an upstream failure leaves the row untouched and
// propagates to the caller.
func (s *appointmentService) Cancel(ctx context.Context, id int64) error {
	appointment, err := s.findAppointment(ctx, id)
	if err != nil {
		return err
	}

	if appointment.Status.IsTerminal() {
		return domainerrors.ErrInvalidTransition.WrapMessage("appointment is already " + string(appointment.Status))
	}

	if appointment.CalEventUID != "" {
		if err := s.scheduler.CancelBooking(ctx, appointment.CalEventUID); err != nil {
			return err
		}
	}

	updated, err := s.appointmentRepo.UpdateStatusIfCurrent(ctx, id, entity.StatusConfirmed, entity.StatusCancelled)
	if err != nil {
		return err
	}
	if !updated {
		return domainerrors.ErrInvalidTransition.WrapMessage("appointment is not confirmed")
	}

	s.logger.Info("Appointment cancelled",
		slog.Int64("appointmentID", id),
		slog.String("calEventUID", appointment.CalEventUID),
	)

	return nil
}

// CancelExternal proxies a cancellation to the scheduler under the
// caller's API key; local state is updated later by the scheduler's own
// cancellation webhook.
func (s *appointmentService) CancelExternal(ctx context.Context, calEventUID, apiKey string) error {
	return s.scheduler.CancelBookingWithKey(ctx, calEventUID, apiKey)
}

func (s *appointmentService) findAppointment(ctx context.Context, id int64) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return nil, domainerrors.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment")
	}

	return appointment, nil
}
