package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

func TestStore_CreateUser(t *testing.T) {
	ctx := context.Background()
	s := NewEmpty()

	first, err := s.CreateUser(ctx, domain.NewUser{Username: "alice", Password: "hash"})
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, domain.NewUser{Username: "bob", Password: "hash", Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	assert.Equal(t, uint(1), first.ID)
	assert.Equal(t, uint(2), second.ID)
	assert.Equal(t, "", first.Name)
	assert.Equal(t, "", first.Email)
	assert.Equal(t, "Bob", second.Name)

	_, err = s.CreateUser(ctx, domain.NewUser{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.ErrorIs(t, err, domain.ErrConflict)

	third, err := s.CreateUser(ctx, domain.NewUser{Username: "carol", Password: "hash"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), third.ID, "failed inserts must not consume ids")
}

func TestStore_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s := NewEmpty()
	created, err := s.CreateUser(ctx, domain.NewUser{Username: "Alice", Password: "hash"})
	require.NoError(t, err)

	found, err := s.GetUserByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.GetUserByUsername(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	byID, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Username)

	_, err = s.GetUser(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_SeededProducts(t *testing.T) {
	ctx := context.Background()
	s := New()

	p, err := s.GetProductByBarcode(ctx, "8901234567890")
	require.NoError(t, err)
	assert.Equal(t, "Organic Oat Milk", p.Name)
	assert.Equal(t, "A+", p.EcoScore)
	assert.Len(t, p.Certifications, 3)

	_, err = s.GetProductByBarcode(ctx, "0000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_InsertedProductsAreRetrievable(t *testing.T) {
	ctx := context.Background()
	s := New()

	inserted := []domain.Product{
		s.InsertProduct(domain.Product{Name: "Reusable Bottle", Brand: "Refill", Category: "Kitchen", Barcode: "1111111111111", EcoScore: "B"}),
		s.InsertProduct(domain.Product{Name: "Wool Socks", Brand: "Knit", Category: "Apparel", Barcode: "2222222222222", EcoScore: "C"}),
	}
	assert.Equal(t, uint(3), inserted[0].ID)
	assert.Equal(t, uint(4), inserted[1].ID)

	for _, want := range inserted {
		byBarcode, err := s.GetProductByBarcode(ctx, want.Barcode)
		require.NoError(t, err)
		assert.Equal(t, want, *byBarcode)

		byID, err := s.GetProductByID(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want, *byID)
	}
}

func TestStore_GetProductByBarcode_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := NewEmpty()
	s.InsertProduct(domain.Product{ID: 5, Name: "Later", Barcode: "dup"})
	s.InsertProduct(domain.Product{ID: 3, Name: "Earlier", Barcode: "dup"})

	p, err := s.GetProductByBarcode(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, "Earlier", p.Name)
}

func TestStore_SearchProducts(t *testing.T) {
	ctx := context.Background()
	s := New()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "lowercase name", query: "oat", want: []string{"Organic Oat Milk"}},
		{name: "uppercase name", query: "BAMBOO", want: []string{"Bamboo Toothbrush"}},
		{name: "brand prefix matches both", query: "eco", want: []string{"Organic Oat Milk", "Bamboo Toothbrush"}},
		{name: "category", query: "personal care", want: []string{"Bamboo Toothbrush"}},
		{name: "partial barcode", query: "78091", want: []string{"Bamboo Toothbrush"}},
		{name: "no match", query: "laptop", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := s.SearchProducts(ctx, tt.query)
			require.NoError(t, err)

			names := make([]string, 0, len(products))
			for _, p := range products {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestStore_SearchProducts_BarcodeIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	s := NewEmpty()
	s.InsertProduct(domain.Product{Name: "Widget", Brand: "Acme", Category: "Tools", Barcode: "ABC-123"})

	products, err := s.SearchProducts(ctx, "ABC")
	require.NoError(t, err)
	assert.Len(t, products, 1)

	products, err = s.SearchProducts(ctx, "abc-1")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStore_ListAlternatives(t *testing.T) {
	ctx := context.Background()
	s := New()

	alternatives, err := s.ListAlternatives(ctx, 1)
	require.NoError(t, err)
	require.Len(t, alternatives, 2)
	assert.Equal(t, "Small Planet Oat Milk", alternatives[0].Name)

	alternatives, err = s.ListAlternatives(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, alternatives)
}

func TestStore_Favorites(t *testing.T) {
	ctx := context.Background()
	s := New()

	alice := domain.UintPtr(1)
	bob := domain.UintPtr(2)

	f1, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: alice, ProductID: domain.UintPtr(1), ProductData: []byte(`{"id":1}`), CreatedAt: "2024-01-01T00:00:00.000Z"})
	require.NoError(t, err)
	f2, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: bob, ProductID: domain.UintPtr(2), ProductData: []byte(`{"id":2}`), CreatedAt: "2024-01-01T00:00:01.000Z"})
	require.NoError(t, err)
	f3, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: alice, ProductID: domain.UintPtr(2), ProductData: []byte(`{"id":2}`), CreatedAt: "2024-01-01T00:00:02.000Z"})
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2, 3}, []uint{f1.ID, f2.ID, f3.ID})

	aliceFavorites, err := s.GetFavoritesByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, aliceFavorites, 2)
	assert.Equal(t, f1.ID, aliceFavorites[0].ID)
	assert.Equal(t, f3.ID, aliceFavorites[1].ID)

	bobFavorites, err := s.GetFavoritesByUserID(ctx, 2)
	require.NoError(t, err)
	require.Len(t, bobFavorites, 1)
	assert.True(t, bobFavorites[0].OwnedBy(2))
	assert.False(t, bobFavorites[0].OwnedBy(1))
}

func TestStore_AddFavorite_DefaultsToNull(t *testing.T) {
	ctx := context.Background()
	s := New()

	f, err := s.AddFavorite(ctx, domain.NewFavorite{ProductData: []byte(`{}`), CreatedAt: "2024-01-01T00:00:00.000Z"})
	require.NoError(t, err)
	assert.Nil(t, f.UserID)
	assert.Nil(t, f.ProductID)
}

func TestStore_RemoveFavorite_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := New()

	f, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: domain.UintPtr(1), ProductID: domain.UintPtr(1), ProductData: []byte(`{}`)})
	require.NoError(t, err)

	removed, err := s.RemoveFavorite(ctx, f.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	favorites, err := s.GetFavoritesByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	removed, err = s.RemoveFavorite(ctx, f.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	next, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: domain.UintPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, f.ID+1, next.ID, "ids are never reused")
}

func TestStore_ReturnedFavoritesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	f, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: domain.UintPtr(1), ProductData: []byte(`{"a":1}`)})
	require.NoError(t, err)
	*f.UserID = 7
	f.ProductData[2] = 'b'

	stored, err := s.GetFavorite(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), *stored.UserID)
	assert.JSONEq(t, `{"a":1}`, string(stored.ProductData))
}

func TestStore_GetRecentSearches(t *testing.T) {
	ctx := context.Background()
	s := New()

	timestamps := []string{
		"2024-03-01T10:00:00.000Z",
		"2024-03-01T10:00:05.000Z",
		"2024-03-01T09:59:59.999Z",
		"2024-03-01T10:00:03.000Z",
		"2024-03-01T10:00:01.000Z",
	}
	for i, ts := range timestamps {
		_, err := s.AddSearchHistory(ctx, domain.NewSearchHistory{UserID: domain.UintPtr(1), Query: fmt.Sprintf("q%d", i), CreatedAt: ts})
		require.NoError(t, err)
	}
	_, err := s.AddSearchHistory(ctx, domain.NewSearchHistory{UserID: domain.UintPtr(2), Query: "other", CreatedAt: "2024-03-02T00:00:00.000Z"})
	require.NoError(t, err)
	_, err = s.AddSearchHistory(ctx, domain.NewSearchHistory{Query: "anonymous", CreatedAt: "2024-03-02T00:00:00.000Z"})
	require.NoError(t, err)

	recent, err := s.GetRecentSearches(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"q1", "q3", "q4"}, []string{recent[0].Query, recent[1].Query, recent[2].Query})
	for i := 1; i < len(recent); i++ {
		assert.Greater(t, recent[i-1].CreatedAt, recent[i].CreatedAt)
	}

	all, err := s.GetRecentSearches(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	none, err := s.GetRecentSearches(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_GetRecentSearches_TiesNewestIDFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, q := range []string{"first", "second"} {
		_, err := s.AddSearchHistory(ctx, domain.NewSearchHistory{UserID: domain.UintPtr(1), Query: q, CreatedAt: "2024-03-01T10:00:00.000Z"})
		require.NoError(t, err)
	}

	recent, err := s.GetRecentSearches(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Query)
}

func TestStore_ConcurrentCreatesAssignUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := New()

	const n = 50
	ids := make(chan uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := s.AddFavorite(ctx, domain.NewFavorite{UserID: domain.UintPtr(1)})
			if err == nil {
				ids <- f.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
