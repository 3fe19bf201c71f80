package sqlstore

import (
	"context"
	"errors"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"gorm.io/gorm"
)

type userRepo struct {
	*crud[models.User]
	db *gorm.DB
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User %s not found", email)
		}
		return nil, storageError(err)
	}
	return &user, nil
}

// Principal loads the user and the name of its role. A user whose role row is
// gone gets an empty role name.
func (r *userRepo) Principal(ctx context.Context, email string) (*models.User, string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	var role models.Role
	err = r.db.WithContext(ctx).First(&role, user.RoleID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return user, "", nil
	case err != nil:
		return nil, "", storageError(err)
	}
	return user, role.Name, nil
}
