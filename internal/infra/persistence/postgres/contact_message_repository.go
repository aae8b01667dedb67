package postgres

import (
	"context"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// contactMessageRepository implements the repository.ContactMessageRepository interface.
type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository is the constructor for contactMessageRepository.
func NewContactMessageRepository(db *gorm.DB) repository.ContactMessageRepository {
	return &contactMessageRepository{
		db: db,
	}
}

// Create persists a new contact message.
func (repo *contactMessageRepository) Create(ctx context.Context, message *entity.ContactMessage) error {
	messageM := fromContactMessageDomain(message)

	if err := repo.db.WithContext(ctx).Create(messageM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact message")
	}

	message.ID = messageM.ID
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// fromContactMessageDomain converts a domain ContactMessage entity to a GORM ContactMessageModel.
func fromContactMessageDomain(data *entity.ContactMessage) *model.ContactMessageModel {
	if data == nil {
		return nil
	}

	return &model.ContactMessageModel{
		ID:      data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Subject: data.Subject,
		Message: data.Message,
	}
}
