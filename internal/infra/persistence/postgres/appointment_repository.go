// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// appointmentRepository implements the repository.AppointmentRepository interface.
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository is the constructor for appointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{
		db: db,
	}
}

// CreateIfAbsent inserts the appointment, letting the unique constraint on
// cal_event_uid absorb concurrent replays of the same scheduler event.
func (repo *appointmentRepository) CreateIfAbsent(ctx context.Context, appointment *entity.Appointment) (bool, error) {
	appointmentM := fromAppointmentDomain(appointment)

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cal_event_uid"}},
			DoNothing: true,
		}).
		Create(appointmentM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return false, domainerrors.ErrUserNotFound.WrapMessage("appointment references an unknown user or service")
		}
		if isNotNullConstraintViolation(result.Error) {
			return false, domainerrors.ErrValidationFailed.WrapMessage("missing required appointment fields")
		}

		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create appointment")
	}

	// RowsAffected == 0 means the conflict clause swallowed the insert:
	// the event was already ingested.
	if result.RowsAffected == 0 {
		return false, nil
	}

	appointment.ID = appointmentM.ID
	appointment.CreatedAt = appointmentM.CreatedAt
	appointment.UpdatedAt = appointmentM.UpdatedAt

	return true, nil
}

// FindByID retrieves an appointment by its internal id.
func (repo *appointmentRepository) FindByID(ctx context.Context, id int64) (*entity.Appointment, error) {
	var appointmentM model.AppointmentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&appointmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment by ID")
	}

	return toAppointmentDomain(&appointmentM), nil
}

// FindByCalEventUID retrieves an appointment by its external scheduler event id.
func (repo *appointmentRepository) FindByCalEventUID(ctx context.Context, calEventUID string) (*entity.Appointment, error) {
	var appointmentM model.AppointmentModel

	if err := repo.db.WithContext(ctx).
		Where("cal_event_uid = ?", calEventUID).
		First(&appointmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment by event UID")
	}

	return toAppointmentDomain(&appointmentM), nil
}

// appointmentDetailRow is the scan target for the joined management listing.
type appointmentDetailRow struct {
	model.AppointmentModel

	ServiceName2    *string  `gorm:"column:svc_name"`
	ServiceDuration *int     `gorm:"column:svc_duration"`
	ServicePrice    *float64 `gorm:"column:svc_price"`
	ServiceCategory *string  `gorm:"column:svc_category"`

	ProfileEmail    *string `gorm:"column:profile_email"`
	ProfileFullName *string `gorm:"column:profile_full_name"`
	ProfilePhone    *string `gorm:"column:profile_phone"`
}

// ListUpcoming retrieves appointments on or after fromDate joined with their
// catalog entry and owner profile, ordered by date then time.
func (repo *appointmentRepository) ListUpcoming(ctx context.Context, fromDate string) ([]*repository.AppointmentWithDetails, error) {
	var rows []*appointmentDetailRow

	if err := repo.db.WithContext(ctx).
		Table("appointments").
		Select(`appointments.*,
			services.name AS svc_name, services.duration AS svc_duration,
			services.price AS svc_price, services.category AS svc_category,
			profiles.email AS profile_email, profiles.full_name AS profile_full_name,
			profiles.phone AS profile_phone`).
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Joins("LEFT JOIN profiles ON profiles.id = appointments.user_id").
		Where("appointments.date >= ?", fromDate).
		Order("appointments.date ASC, appointments.time ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list upcoming appointments")
	}

	details := make([]*repository.AppointmentWithDetails, 0, len(rows))
	for _, row := range rows {
		details = append(details, toAppointmentDetail(row))
	}

	return details, nil
}

// UpdateStatusIfCurrent transitions status with a compare-and-set guard.
func (repo *appointmentRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, expected, next entity.AppointmentStatus) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to update appointment status")
	}

	return result.RowsAffected > 0, nil
}

// CancelByCalEventUID marks the appointment for the given external event id cancelled.
func (repo *appointmentRepository) CancelByCalEventUID(ctx context.Context, calEventUID string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("cal_event_uid = ?", calEventUID).
		Updates(map[string]any{
			"status":     string(entity.StatusCancelled),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to cancel appointment by event UID")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAppointmentNotFound
	}

	return nil
}

// FindDueDayReminders retrieves confirmed appointments with an unsent
// 24-hour reminder inside the inclusive date window.
func (repo *appointmentRepository) FindDueDayReminders(ctx context.Context, fromDate, toDate string) ([]*entity.Appointment, error) {
	var appointmentModels []*model.AppointmentModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND reminder_1d_sent = ? AND date >= ? AND date <= ?",
			string(entity.StatusConfirmed), false, fromDate, toDate).
		Order("date ASC, time ASC").
		Find(&appointmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find due day reminders")
	}

	return toAppointmentDomainSlice(appointmentModels), nil
}

// FindPendingHourReminders retrieves every confirmed appointment with an
// unsent 1-hour reminder; the minute-level window filter runs in the caller.
func (repo *appointmentRepository) FindPendingHourReminders(ctx context.Context) ([]*entity.Appointment, error) {
	var appointmentModels []*model.AppointmentModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND reminder_1h_sent = ?", string(entity.StatusConfirmed), false).
		Order("date ASC, time ASC").
		Find(&appointmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find pending hour reminders")
	}

	return toAppointmentDomainSlice(appointmentModels), nil
}

// ClaimReminder flips the reminder flag for the offset with a
// compare-and-set update so only one run delivers each reminder.
func (repo *appointmentRepository) ClaimReminder(ctx context.Context, id int64, offset entity.ReminderOffset, at time.Time) (bool, error) {
	var column string
	switch offset {
	case entity.ReminderOneDay:
		column = "reminder_1d_sent"
	case entity.ReminderOneHour:
		column = "reminder_1h_sent"
	default:
		return false, errors.Errorf("unknown reminder offset %q", offset)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AppointmentModel{}).
		Where("id = ? AND "+column+" = ?", id, false).
		Updates(map[string]any{
			column:       true,
			"updated_at": at,
		})

	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to claim reminder")
	}

	return result.RowsAffected > 0, nil
}

// --- Mapper Functions ---

// toAppointmentDomain converts a GORM AppointmentModel to a domain Appointment entity.
func toAppointmentDomain(data *model.AppointmentModel) *entity.Appointment {
	if data == nil {
		return nil
	}

	return &entity.Appointment{
		ID:              data.ID,
		UserID:          data.UserID,
		ServiceID:       data.ServiceID,
		ServiceName:     data.ServiceName,
		CalEventUID:     data.CalEventUID,
		StartTime:       data.StartTime,
		EndTime:         data.EndTime,
		Date:            data.Date,
		Time:            data.Time,
		Status:          entity.AppointmentStatus(data.Status),
		PaymentStatus:   data.PaymentStatus,
		StripeSessionID: data.StripeSessionID,
		AmountPaid:      data.AmountPaid,
		Reminder1DSent:  data.Reminder1DSent,
		Reminder1HSent:  data.Reminder1HSent,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toAppointmentDomainSlice(data []*model.AppointmentModel) []*entity.Appointment {
	appointments := make([]*entity.Appointment, 0, len(data))
	for _, appointmentM := range data {
		appointments = append(appointments, toAppointmentDomain(appointmentM))
	}

	return appointments
}

// fromAppointmentDomain converts a domain Appointment entity to a GORM AppointmentModel.
func fromAppointmentDomain(data *entity.Appointment) *model.AppointmentModel {
	if data == nil {
		return nil
	}

	return &model.AppointmentModel{
		ID:              data.ID,
		UserID:          data.UserID,
		ServiceID:       data.ServiceID,
		ServiceName:     data.ServiceName,
		CalEventUID:     data.CalEventUID,
		StartTime:       data.StartTime,
		EndTime:         data.EndTime,
		Date:            data.Date,
		Time:            data.Time,
		Status:          string(data.Status),
		PaymentStatus:   data.PaymentStatus,
		StripeSessionID: data.StripeSessionID,
		AmountPaid:      data.AmountPaid,
		Reminder1DSent:  data.Reminder1DSent,
		Reminder1HSent:  data.Reminder1HSent,
	}
}

// toAppointmentDetail converts a joined listing row to the repository detail bundle.
func toAppointmentDetail(row *appointmentDetailRow) *repository.AppointmentWithDetails {
	detail := &repository.AppointmentWithDetails{
		Appointment: toAppointmentDomain(&row.AppointmentModel),
	}

	if row.ServiceID != nil && row.ServiceName2 != nil {
		detail.Service = &entity.Service{
			ID:       *row.ServiceID,
			Name:     *row.ServiceName2,
			Duration: derefInt(row.ServiceDuration),
			Price:    derefFloat(row.ServicePrice),
			Category: derefString(row.ServiceCategory),
		}
	}

	if row.ProfileEmail != nil || row.ProfileFullName != nil {
		detail.Profile = &entity.Profile{
			ID:       row.UserID,
			Email:    derefString(row.ProfileEmail),
			FullName: derefString(row.ProfileFullName),
			Phone:    derefString(row.ProfilePhone),
		}
	}

	return detail
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}

	return *i
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}

	return *f
}
