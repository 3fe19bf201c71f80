package models

import (
	"github.com/localnerve/shopdb/internal/types"
)

// Role is static reference data: Admin, User, Expert.
type Role struct {
	RoleID int64  `gorm:"primaryKey;autoIncrement" json:"roleId" bson:"_id"`
	Name   string `gorm:"size:64;not null;uniqueIndex" json:"name" bson:"name"`
}

// Brand is a product manufacturer.
type Brand struct {
	BrandID int64  `gorm:"primaryKey;autoIncrement" json:"brandId" bson:"_id"`
	Name    string `gorm:"size:255;not null" json:"name" bson:"name"`
	Country string `gorm:"size:128;not null" json:"country" bson:"country"`
}

// Category groups products.
type Category struct {
	CategoryID int64  `gorm:"primaryKey;autoIncrement" json:"categoryId" bson:"_id"`
	Name       string `gorm:"size:255;not null" json:"name" bson:"name"`
}

// Product references a Brand and a Category. QuantityAvailable never goes negative.
type Product struct {
	ProductID         int64  `gorm:"primaryKey;autoIncrement" json:"productId" bson:"_id"`
	BrandID           int64  `gorm:"not null;index" json:"brandId" bson:"brandId"`
	CategoryID        int64  `gorm:"not null;index" json:"categoryId" bson:"categoryId"`
	Name              string `gorm:"size:255;not null" json:"name" bson:"name"`
	Description       string `gorm:"size:2000;not null" json:"description" bson:"description"`
	Price             Money  `gorm:"not null" json:"price" bson:"price"`
	QuantityAvailable int64  `gorm:"not null;default:0" json:"quantityAvailable" bson:"quantityAvailable"`
}

// TableName overrides the table name for Role
func (Role) TableName() string {
	return "roles"
}

// TableName overrides the table name for Brand
func (Brand) TableName() string {
	return "brands"
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// RolePatch is the partial form of Role.
type RolePatch struct {
	Name *string `json:"name"`
}

func (p RolePatch) Apply(row *Role) {
	mergeString(&row.Name, p.Name)
}

func (p RolePatch) Validate(create bool) error {
	if create {
		return firstMissing(field("name", !blank(p.Name)))
	}
	return nil
}

// BrandPatch is the partial form of Brand.
type BrandPatch struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

func (p BrandPatch) Apply(row *Brand) {
	mergeString(&row.Name, p.Name)
	mergeString(&row.Country, p.Country)
}

func (p BrandPatch) Validate(create bool) error {
	if create {
		return firstMissing(
			field("name", !blank(p.Name)),
			field("country", !blank(p.Country)),
		)
	}
	return nil
}

// CategoryPatch is the partial form of Category.
type CategoryPatch struct {
	Name *string `json:"name"`
}

func (p CategoryPatch) Apply(row *Category) {
	mergeString(&row.Name, p.Name)
}

func (p CategoryPatch) Validate(create bool) error {
	if create {
		return firstMissing(field("name", !blank(p.Name)))
	}
	return nil
}

// ProductPatch is the partial form of Product. Zero is a valid price and quantity.
type ProductPatch struct {
	BrandID           *types.FlexInt64 `json:"brandId"`
	CategoryID        *types.FlexInt64 `json:"categoryId"`
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *Money           `json:"price"`
	QuantityAvailable *types.FlexInt64 `json:"quantityAvailable"`
}

func (p ProductPatch) Apply(row *Product) {
	mergeInt64(&row.BrandID, p.BrandID)
	mergeInt64(&row.CategoryID, p.CategoryID)
	mergeString(&row.Name, p.Name)
	mergeString(&row.Description, p.Description)
	if p.Price != nil {
		row.Price = *p.Price
	}
	mergeInt64(&row.QuantityAvailable, p.QuantityAvailable)
}

func (p ProductPatch) Validate(create bool) error {
	if create {
		if err := firstMissing(
			field("brandId", p.BrandID != nil),
			field("categoryId", p.CategoryID != nil),
			field("name", !blank(p.Name)),
			field("description", !blank(p.Description)),
			field("price", p.Price != nil),
			field("quantityAvailable", p.QuantityAvailable != nil),
		); err != nil {
			return err
		}
	}
	if p.BrandID != nil && p.BrandID.Int64() <= 0 {
		return types.Validation("Field 'brandId' must be a positive identifier")
	}
	if p.CategoryID != nil && p.CategoryID.Int64() <= 0 {
		return types.Validation("Field 'categoryId' must be a positive identifier")
	}
	if p.Price != nil {
		if p.Price.IsNegative() {
			return types.Validation("Field 'price' must not be negative")
		}
		if err := checkPrice(*p.Price); err != nil {
			return err
		}
	}
	if p.QuantityAvailable != nil && p.QuantityAvailable.Int64() < 0 {
		return types.Validation("Field 'quantityAvailable' must not be negative")
	}
	return nil
}
