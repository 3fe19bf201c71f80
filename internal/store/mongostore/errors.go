package mongostore

import (
	"errors"

	"github.com/localnerve/shopdb/internal/types"
	"go.mongodb.org/mongo-driver/mongo"
)

func translate(err error, entity string, id int64) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.NotFound("%s %d not found", entity, id)
	}
	return storageError(err)
}

func storageError(err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return err
	}
	if mongo.IsDuplicateKeyError(err) {
		return types.Duplicate(err)
	}
	return types.StorageUnavailable(err)
}
