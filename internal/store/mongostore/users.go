package mongostore

import (
	"context"
	"errors"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	*crud[models.User]
	roles *mongo.Collection
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, types.NotFound("User %s not found", email)
		}
		return nil, storageError(err)
	}
	return &user, nil
}

func (r *userRepo) Principal(ctx context.Context, email string) (*models.User, string, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	var role models.Role
	err = r.roles.FindOne(ctx, bson.M{"_id": user.RoleID}).Decode(&role)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return user, "", nil
	case err != nil:
		return nil, "", storageError(err)
	}
	return user, role.Name, nil
}
