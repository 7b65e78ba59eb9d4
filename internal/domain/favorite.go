package domain

import "gorm.io/datatypes"

// Favorite is a user-owned bookmark of a product. ProductData is the product
// as it looked when the favorite was created.
type Favorite struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      *uint          `json:"userId" gorm:"index"`
	ProductID   *uint          `json:"productId"`
	ProductData datatypes.JSON `json:"productData" gorm:"not null"`
	CreatedAt   string         `json:"createdAt" gorm:"not null"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// OwnedBy reports whether the favorite belongs to userID
func (f *Favorite) OwnedBy(userID uint) bool {
	return f.UserID != nil && *f.UserID == userID
}

// NewFavorite is the candidate passed to AddFavorite
type NewFavorite struct {
	UserID      *uint
	ProductID   *uint
	ProductData datatypes.JSON
	CreatedAt   string
}

// UintPtr returns a pointer to v
func UintPtr(v uint) *uint {
	return &v
}
