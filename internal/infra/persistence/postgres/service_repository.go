package postgres

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/domain/repository"
	"barbershop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// serviceRepository implements the repository.ServiceRepository interface.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository is the constructor for serviceRepository.
func NewServiceRepository(db *gorm.DB) repository.ServiceRepository {
	return &serviceRepository{
		db: db,
	}
}

// ListServices retrieves the whole catalog in its stored order.
func (repo *serviceRepository) ListServices(ctx context.Context) ([]*entity.Service, error) {
	var serviceModels []*model.ServiceModel

	if err := repo.db.WithContext(ctx).
		Order("id ASC").
		Find(&serviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	services := make([]*entity.Service, 0, len(serviceModels))
	for _, serviceM := range serviceModels {
		services = append(services, toServiceDomain(serviceM))
	}

	return services, nil
}

// FindByID retrieves a catalog entry by id.
func (repo *serviceRepository) FindByID(ctx context.Context, id int64) (*entity.Service, error) {
	var serviceM model.ServiceModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&serviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrServiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find service by ID")
	}

	return toServiceDomain(&serviceM), nil
}

// --- Mapper Functions ---

// toServiceDomain converts a GORM ServiceModel to a domain Service entity.
func toServiceDomain(data *model.ServiceModel) *entity.Service {
	if data == nil {
		return nil
	}

	return &entity.Service{
		ID:       data.ID,
		Name:     data.Name,
		Duration: data.Duration,
		Price:    data.Price,
		Category: data.Category,
	}
}
