package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ecoscan/ecoscan-api/internal/domain"
	"github.com/ecoscan/ecoscan-api/internal/store"
)

// Store is a process-local implementation of domain.Store.
// All state is lost when the process exits.
type Store struct {
	mu sync.RWMutex

	users        map[uint]domain.User
	products     map[uint]domain.Product
	alternatives map[uint][]domain.Alternative
	favorites    map[uint]domain.Favorite
	searches     map[uint]domain.SearchHistory

	nextUserID     uint
	nextProductID  uint
	nextFavoriteID uint
	nextSearchID   uint
}

// New creates a store seeded with the reference products and alternatives
func New() *Store {
	s := NewEmpty()
	for _, p := range store.SeedProducts() {
		s.InsertProduct(p)
	}
	for _, a := range store.SeedAlternatives() {
		s.alternatives[a.ProductID] = append(s.alternatives[a.ProductID], a)
	}
	return s
}

// NewEmpty creates a store without any reference data
func NewEmpty() *Store {
	return &Store{
		users:          make(map[uint]domain.User),
		products:       make(map[uint]domain.Product),
		alternatives:   make(map[uint][]domain.Alternative),
		favorites:      make(map[uint]domain.Favorite),
		searches:       make(map[uint]domain.SearchHistory),
		nextUserID:     1,
		nextProductID:  1,
		nextFavoriteID: 1,
		nextSearchID:   1,
	}
}

// InsertProduct loads reference data. A zero ID is replaced by the next
// product id; explicit ids move the counter past them.
func (s *Store) InsertProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextProductID
	}
	if p.ID >= s.nextProductID {
		s.nextProductID = p.ID + 1
	}
	s.products[p.ID] = copyProduct(p)
	return copyProduct(p)
}

// Ping always succeeds for the in-memory store
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreateUser stores a new user under the next user id
func (s *Store) CreateUser(ctx context.Context, candidate domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == candidate.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	user := domain.User{
		ID:       s.nextUserID,
		Username: candidate.Username,
		Password: candidate.Password,
		Name:     candidate.Name,
		Email:    candidate.Email,
	}
	s.nextUserID++
	s.users[user.ID] = user

	return &user, nil
}

// GetProductByBarcode returns the lowest-id product with exactly this barcode
func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.sortedProducts() {
		if p.Barcode == barcode {
			product := copyProduct(p)
			return &product, nil
		}
	}
	return nil, domain.ErrNotFound
}

// SearchProducts matches name, brand and category case-insensitively and
// barcode case-sensitively, all as substrings. Results are ordered by id.
func (s *Store) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(query)
	results := []domain.Product{}
	for _, p := range s.sortedProducts() {
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Brand), lower) ||
			strings.Contains(strings.ToLower(p.Category), lower) ||
			strings.Contains(p.Barcode, query) {
			results = append(results, copyProduct(p))
		}
	}
	return results, nil
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	product := copyProduct(p)
	return &product, nil
}

// ListAlternatives returns the alternatives registered for a product
func (s *Store) ListAlternatives(ctx context.Context, productID uint) ([]domain.Alternative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alternatives := make([]domain.Alternative, len(s.alternatives[productID]))
	copy(alternatives, s.alternatives[productID])
	return alternatives, nil
}

// AddFavorite stores a new favorite under the next favorite id
func (s *Store) AddFavorite(ctx context.Context, candidate domain.NewFavorite) (*domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorite := domain.Favorite{
		ID:          s.nextFavoriteID,
		UserID:      copyUintPtr(candidate.UserID),
		ProductID:   copyUintPtr(candidate.ProductID),
		ProductData: append([]byte(nil), candidate.ProductData...),
		CreatedAt:   candidate.CreatedAt,
	}
	s.nextFavoriteID++
	s.favorites[favorite.ID] = favorite

	result := copyFavorite(favorite)
	return &result, nil
}

// GetFavorite retrieves a favorite by ID
func (s *Store) GetFavorite(ctx context.Context, id uint) (*domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorite, ok := s.favorites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	result := copyFavorite(favorite)
	return &result, nil
}

// GetFavoritesByUserID returns the user's favorites in insertion order
func (s *Store) GetFavoritesByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites := []domain.Favorite{}
	for _, f := range s.favorites {
		if f.OwnedBy(userID) {
			favorites = append(favorites, copyFavorite(f))
		}
	}
	sort.Slice(favorites, func(i, j int) bool {
		return favorites[i].ID < favorites[j].ID
	})
	return favorites, nil
}

// RemoveFavorite deletes a favorite and reports whether it existed
func (s *Store) RemoveFavorite(ctx context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[id]; !ok {
		return false, nil
	}
	delete(s.favorites, id)
	return true, nil
}

// AddSearchHistory appends an entry under the next search id
func (s *Store) AddSearchHistory(ctx context.Context, candidate domain.NewSearchHistory) (*domain.SearchHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.SearchHistory{
		ID:        s.nextSearchID,
		UserID:    copyUintPtr(candidate.UserID),
		Query:     candidate.Query,
		CreatedAt: candidate.CreatedAt,
	}
	s.nextSearchID++
	s.searches[entry.ID] = entry

	result := entry
	result.UserID = copyUintPtr(entry.UserID)
	return &result, nil
}

// GetRecentSearches returns at most limit entries of the user, newest first.
// Entries with equal timestamps are ordered by descending id.
func (s *Store) GetRecentSearches(ctx context.Context, userID uint, limit int) ([]domain.SearchHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []domain.SearchHistory{}
	for _, e := range s.searches {
		if e.UserID != nil && *e.UserID == userID {
			entry := e
			entry.UserID = copyUintPtr(e.UserID)
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt != entries[j].CreatedAt {
			return entries[i].CreatedAt > entries[j].CreatedAt
		}
		return entries[i].ID > entries[j].ID
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// sortedProducts must be called with the lock held
func (s *Store) sortedProducts() []domain.Product {
	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products
}

func copyProduct(p domain.Product) domain.Product {
	if p.Certifications != nil {
		p.Certifications = append([]domain.Certification(nil), p.Certifications...)
	}
	return p
}

func copyFavorite(f domain.Favorite) domain.Favorite {
	f.UserID = copyUintPtr(f.UserID)
	f.ProductID = copyUintPtr(f.ProductID)
	f.ProductData = append([]byte(nil), f.ProductData...)
	return f
}

func copyUintPtr(v *uint) *uint {
	if v == nil {
		return nil
	}
	return domain.UintPtr(*v)
}

var _ domain.Store = (*Store)(nil)
