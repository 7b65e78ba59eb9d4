package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/store"
)

// Store implements domain.Store on top of GORM. The connection must be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

// New creates a new GORM store
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the tables and loads the reference products when the
// products table is empty
func (s *Store) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.Alternative{},
		&domain.Favorite{},
		&domain.SearchHistory{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		products := store.SeedProducts()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		alternatives := store.SeedAlternatives()
		if err := tx.Create(&alternatives).Error; err != nil {
			return fmt.Errorf("failed to seed alternatives: %w", err)
		}
		return nil
	})
}

// Ping checks the underlying connection
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "failed to find user")
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "failed to find user")
	}
	return &user, nil
}

// CreateUser inserts a new user into the database
func (s *Store) CreateUser(ctx context.Context, candidate domain.NewUser) (*domain.User, error) {
	user := domain.User{
		Username: candidate.Username,
		Password: candidate.Password,
		Name:     candidate.Name,
		Email:    candidate.Email,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// GetProductByBarcode retrieves the lowest-id product with this barcode
func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Order("id ASC").
		First(&product).Error
	if err != nil {
		return nil, translate(err, "failed to find product")
	}
	return &product, nil
}

// SearchProducts matches name, brand and category case-insensitively and
// barcode case-sensitively
func (s *Store) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	folded := "%" + escapeLike(strings.ToLower(query)) + "%"
	exact := "%" + escapeLike(query) + "%"

	products := []domain.Product{}
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(category) LIKE ? OR barcode LIKE ?",
			folded, folded, folded, exact).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err, "failed to find product")
	}
	return &product, nil
}

// ListAlternatives returns the alternatives registered for a product
func (s *Store) ListAlternatives(ctx context.Context, productID uint) ([]domain.Alternative, error) {
	alternatives := []domain.Alternative{}
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&alternatives).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list alternatives: %w", err)
	}
	return alternatives, nil
}

// AddFavorite inserts a favorite
func (s *Store) AddFavorite(ctx context.Context, candidate domain.NewFavorite) (*domain.Favorite, error) {
	favorite := domain.Favorite{
		UserID:      candidate.UserID,
		ProductID:   candidate.ProductID,
		ProductData: candidate.ProductData,
		CreatedAt:   candidate.CreatedAt,
	}
	if favorite.ProductData == nil {
		favorite.ProductData = []byte("null")
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return &favorite, nil
}

// GetFavorite retrieves a favorite by ID
func (s *Store) GetFavorite(ctx context.Context, id uint) (*domain.Favorite, error) {
	var favorite domain.Favorite
	if err := s.db.WithContext(ctx).First(&favorite, id).Error; err != nil {
		return nil, translate(err, "failed to find favorite")
	}
	return &favorite, nil
}

// GetFavoritesByUserID returns the user's favorites in insertion order
func (s *Store) GetFavoritesByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// RemoveFavorite deletes a favorite and reports whether a row was removed
func (s *Store) RemoveFavorite(ctx context.Context, id uint) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&domain.Favorite{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// AddSearchHistory appends a search history entry
func (s *Store) AddSearchHistory(ctx context.Context, candidate domain.NewSearchHistory) (*domain.SearchHistory, error) {
	entry := domain.SearchHistory{
		UserID:    candidate.UserID,
		Query:     candidate.Query,
		CreatedAt: candidate.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to add search history: %w", err)
	}
	return &entry, nil
}

// GetRecentSearches returns at most limit entries of the user, newest first
func (s *Store) GetRecentSearches(ctx context.Context, userID uint, limit int) ([]domain.SearchHistory, error) {
	entries := []domain.SearchHistory{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent searches: %w", err)
	}
	return entries, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// escapeLike escapes LIKE wildcards using the default backslash escape
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ domain.Store = (*Store)(nil)
