package sqlstore

import (
	"context"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

type productRepo struct {
	*crud[models.Product]
	db *gorm.DB
}

// productRow is one row of the products/brands/categories join.
type productRow struct {
	ProductID         int64
	BrandID           int64
	CategoryID        int64
	Name              string
	Description       string
	Price             models.Money
	QuantityAvailable int64
	BrandName         string
	BrandCountry      string
	CategoryName      string
}

func (row productRow) view() models.ProductView {
	return models.NewProductView(
		models.Product{
			ProductID:         row.ProductID,
			BrandID:           row.BrandID,
			CategoryID:        row.CategoryID,
			Name:              row.Name,
			Description:       row.Description,
			Price:             row.Price,
			QuantityAvailable: row.QuantityAvailable,
		},
		models.Brand{BrandID: row.BrandID, Name: row.BrandName, Country: row.BrandCountry},
		models.Category{CategoryID: row.CategoryID, Name: row.CategoryName},
	)
}

func (r *productRepo) detailed(ctx context.Context, comment string) *gorm.DB {
	return r.db.WithContext(ctx).
		Clauses(hints.Comment("select", comment)).
		Table("products p").
		Select("p.product_id, p.brand_id, p.category_id, p.name, p.description, p.price, p.quantity_available, " +
			"b.name AS brand_name, b.country AS brand_country, c.name AS category_name").
		Joins("JOIN brands b ON b.brand_id = p.brand_id").
		Joins("JOIN categories c ON c.category_id = p.category_id")
}

// ListDetailed returns products that have both a brand and a category.
func (r *productRepo) ListDetailed(ctx context.Context) ([]models.ProductView, error) {
	var rows []productRow
	if err := r.detailed(ctx, "shopdb:products.list").Order("p.product_id").Scan(&rows).Error; err != nil {
		return nil, storageError(err)
	}

	views := make([]models.ProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}
	return views, nil
}

func (r *productRepo) GetDetailed(ctx context.Context, id int64) (*models.ProductView, error) {
	var rows []productRow
	err := r.detailed(ctx, "shopdb:products.get").
		Where("p.product_id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, storageError(err)
	}
	if len(rows) == 0 {
		return nil, types.NotFound("Product %d not found", id)
	}
	view := rows[0].view()
	return &view, nil
}
