package services

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/store"
	"github.com/localnerve/shopdb/internal/types"
)

// exists turns a NotFound lookup into a validation error naming the reference.
func exists(err error, format string, id int64) error {
	if err == nil {
		return nil
	}
	if types.IsType(err, types.TypeNotFound) {
		return types.Validation(format, id)
	}
	return err
}

// CheckProductReferences verifies the brand and category a product points to
// exist. Only the references present in the patch are checked.
func CheckProductReferences(ctx context.Context, st store.Store, patch models.ProductPatch) error {
	if patch.BrandID != nil {
		_, err := st.Brands().Get(ctx, patch.BrandID.Int64())
		if err := exists(err, "Brand %d does not exist", patch.BrandID.Int64()); err != nil {
			return err
		}
	}
	if patch.CategoryID != nil {
		_, err := st.Categories().Get(ctx, patch.CategoryID.Int64())
		if err := exists(err, "Category %d does not exist", patch.CategoryID.Int64()); err != nil {
			return err
		}
	}
	return nil
}

// CheckUser verifies a referenced user exists.
func CheckUser(ctx context.Context, st store.Store, userID int64) error {
	_, err := st.Users().Get(ctx, userID)
	return exists(err, "User %d does not exist", userID)
}

// CheckRole verifies a referenced role exists.
func CheckRole(ctx context.Context, st store.Store, roleID int64) error {
	_, err := st.Roles().Get(ctx, roleID)
	return exists(err, "Role %d does not exist", roleID)
}
