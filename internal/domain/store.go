package domain

import "context"

// UserRepository defines the contract for user data access
type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user NewUser) (*User, error)
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	GetProductByBarcode(ctx context.Context, barcode string) (*Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	GetProductByID(ctx context.Context, id uint) (*Product, error)
	ListAlternatives(ctx context.Context, productID uint) ([]Alternative, error)
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, favorite NewFavorite) (*Favorite, error)
	GetFavorite(ctx context.Context, id uint) (*Favorite, error)
	GetFavoritesByUserID(ctx context.Context, userID uint) ([]Favorite, error)
	RemoveFavorite(ctx context.Context, id uint) (bool, error)
}

// SearchHistoryRepository defines the contract for search history data access
type SearchHistoryRepository interface {
	AddSearchHistory(ctx context.Context, entry NewSearchHistory) (*SearchHistory, error)
	GetRecentSearches(ctx context.Context, userID uint, limit int) ([]SearchHistory, error)
}

// Store is the single owner of all EcoScan entities. Lookups that find
// nothing return ErrNotFound.
type Store interface {
	UserRepository
	ProductRepository
	FavoriteRepository
	SearchHistoryRepository

	Ping(ctx context.Context) error
}
