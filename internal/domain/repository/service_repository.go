package repository

import (
	"context"

	"barbershop/internal/domain/entity"
	"barbershop/internal/errors"
)

// ErrServiceNotFound is returned when a catalog entry is not found.
var ErrServiceNotFound = errors.New("service not found")

// ServiceRepository defines read access to the service catalog.
type ServiceRepository interface {
	// ListServices retrieves the whole catalog in its stored order.
	ListServices(ctx context.Context) ([]*entity.Service, error)

	// FindByID retrieves a catalog entry by id.
	FindByID(ctx context.Context, id int64) (*entity.Service, error)
}
