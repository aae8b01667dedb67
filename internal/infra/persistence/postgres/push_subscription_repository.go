package postgres

import (
	"context"

	"barbershop/internal/domain/entity"
	domainerrors "barbershop/internal/domain/errors"
	"barbershop/internal/domain/repository"
	"barbershop/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pushSubscriptionRepository implements the repository.PushSubscriptionRepository interface.
type pushSubscriptionRepository struct {
	db *gorm.DB
}

// NewPushSubscriptionRepository is the constructor for pushSubscriptionRepository.
func NewPushSubscriptionRepository(db *gorm.DB) repository.PushSubscriptionRepository {
	return &pushSubscriptionRepository{
		db: db,
	}
}

// Upsert persists the subscription, replacing any existing row with the
// same endpoint. Re-subscribing from the same browser moves the endpoint
// to the current user and refreshes the keys.
func (repo *pushSubscriptionRepository) Upsert(ctx context.Context, subscription *entity.PushSubscription) error {
	subscriptionM := fromPushSubscriptionDomain(subscription)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth", "provider", "updated_at"}),
		}).
		Create(subscriptionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("subscription references an unknown user")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInvalidSubscription.WrapMessage("missing required subscription fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert push subscription")
	}

	subscription.ID = subscriptionM.ID
	subscription.CreatedAt = subscriptionM.CreatedAt
	subscription.UpdatedAt = subscriptionM.UpdatedAt

	return nil
}

// FindByUser retrieves all subscriptions owned by a user.
func (repo *pushSubscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PushSubscription, error) {
	var subscriptionModels []*model.PushSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find push subscriptions by user")
	}

	return toPushSubscriptionDomainSlice(subscriptionModels), nil
}

// ListAll retrieves every subscription for broadcast sends.
func (repo *pushSubscriptionRepository) ListAll(ctx context.Context) ([]*entity.PushSubscription, error) {
	var subscriptionModels []*model.PushSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&subscriptionModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list push subscriptions")
	}

	return toPushSubscriptionDomainSlice(subscriptionModels), nil
}

// DeleteByEndpoint removes a subscription by its endpoint.
func (repo *pushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	result := repo.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&model.PushSubscriptionModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete push subscription")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPushSubscriptionDomain converts a GORM PushSubscriptionModel to a domain PushSubscription entity.
func toPushSubscriptionDomain(data *model.PushSubscriptionModel) *entity.PushSubscription {
	if data == nil {
		return nil
	}

	return &entity.PushSubscription{
		ID:        data.ID,
		UserID:    data.UserID,
		Endpoint:  data.Endpoint,
		P256dh:    data.P256dh,
		Auth:      data.Auth,
		Provider:  entity.PushProvider(data.Provider),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toPushSubscriptionDomainSlice(data []*model.PushSubscriptionModel) []*entity.PushSubscription {
	subscriptions := make([]*entity.PushSubscription, 0, len(data))
	for _, subscriptionM := range data {
		subscriptions = append(subscriptions, toPushSubscriptionDomain(subscriptionM))
	}

	return subscriptions
}

// fromPushSubscriptionDomain converts a domain PushSubscription entity to a GORM PushSubscriptionModel.
func fromPushSubscriptionDomain(data *entity.PushSubscription) *model.PushSubscriptionModel {
	if data == nil {
		return nil
	}

	return &model.PushSubscriptionModel{
		ID:       data.ID,
		UserID:   data.UserID,
		Endpoint: data.Endpoint,
		P256dh:   data.P256dh,
		Auth:     data.Auth,
		Provider: string(data.Provider),
	}
}
