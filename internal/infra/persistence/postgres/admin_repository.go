package postgres

import (
	"context"
	"strings"

	"barbershop/internal/domain/repository"
	"barbershop/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// adminRepository implements the repository.AdminRepository interface.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{
		db: db,
	}
}

// IsAdmin reports whether the given email is on the admin allow-list.
// The comparison is case-insensitive on the caller's side.
func (repo *adminRepository) IsAdmin(ctx context.Context, email string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.AdminModel{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check admin membership")
	}

	return count > 0, nil
}
