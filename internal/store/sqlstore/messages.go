package sqlstore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"gorm.io/gorm"
)

type messageRepo struct {
	*crud[models.Message]
	db *gorm.DB
}

func (r *messageRepo) ListForUser(ctx context.Context, userID int64) ([]models.Message, error) {
	rows := make([]models.Message, 0)
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("message_id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}

type visitRepo struct {
	*crud[models.Visit]
	db *gorm.DB
}

func (r *visitRepo) ListForUser(ctx context.Context, userID int64) ([]models.Visit, error) {
	rows := make([]models.Visit, 0)
	err := r.db.WithContext(ctx).
		Where("visitor_id = ? OR expert_id = ?", userID, userID).
		Order("visit_id").
		Find(&rows).Error
	if err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}
