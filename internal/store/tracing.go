package store

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ecoscan/ecoscan-api/internal/domain"
)

var tracer = otel.Tracer("ecoscan-store")

// TracingStore wraps a domain.Store and records a span for every call
type TracingStore struct {
	next domain.Store
}

// NewTracingStore creates a new store with tracing
func NewTracingStore(next domain.Store) *TracingStore {
	return &TracingStore{next: next}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Ping with tracing
func (s *TracingStore) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "store.Ping")
	defer span.End()

	if err := s.next.Ping(ctx); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// GetUser with tracing
func (s *TracingStore) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "store.GetUser",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	user, err := s.next.GetUser(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return user, nil
}

// GetUserByUsername with tracing
func (s *TracingStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "store.GetUserByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	user, err := s.next.GetUserByUsername(ctx, username)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return user, nil
}

// CreateUser with tracing
func (s *TracingStore) CreateUser(ctx context.Context, candidate domain.NewUser) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "store.CreateUser",
		trace.WithAttributes(attribute.String("user.username", candidate.Username)),
	)
	defer span.End()

	user, err := s.next.CreateUser(ctx, candidate)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return user, nil
}

// GetProductByBarcode with tracing
func (s *TracingStore) GetProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "store.GetProductByBarcode",
		trace.WithAttributes(attribute.String("product.barcode", barcode)),
	)
	defer span.End()

	product, err := s.next.GetProductByBarcode(ctx, barcode)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("product.id", int(product.ID)),
		attribute.String("product.eco_score", product.EcoScore),
	)
	return product, nil
}

// SearchProducts with tracing
func (s *TracingStore) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "store.SearchProducts",
		trace.WithAttributes(attribute.String("search.query", query)),
	)
	defer span.End()

	products, err := s.next.SearchProducts(ctx, query)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(products)))
	return products, nil
}

// GetProductByID with tracing
func (s *TracingStore) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "store.GetProductByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := s.next.GetProductByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.name", product.Name))
	return product, nil
}

// ListAlternatives with tracing
func (s *TracingStore) ListAlternatives(ctx context.Context, productID uint) ([]domain.Alternative, error) {
	ctx, span := tracer.Start(ctx, "store.ListAlternatives",
		trace.WithAttributes(attribute.Int("product.id", int(productID))),
	)
	defer span.End()

	alternatives, err := s.next.ListAlternatives(ctx, productID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("alternatives.count", len(alternatives)))
	return alternatives, nil
}

// AddFavorite with tracing
func (s *TracingStore) AddFavorite(ctx context.Context, candidate domain.NewFavorite) (*domain.Favorite, error) {
	attrs := []attribute.KeyValue{}
	if candidate.UserID != nil {
		attrs = append(attrs, attribute.Int("user.id", int(*candidate.UserID)))
	}
	if candidate.ProductID != nil {
		attrs = append(attrs, attribute.Int("product.id", int(*candidate.ProductID)))
	}

	ctx, span := tracer.Start(ctx, "store.AddFavorite", trace.WithAttributes(attrs...))
	defer span.End()

	favorite, err := s.next.AddFavorite(ctx, candidate)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorite.id", int(favorite.ID)))
	return favorite, nil
}

// GetFavorite with tracing
func (s *TracingStore) GetFavorite(ctx context.Context, id uint) (*domain.Favorite, error) {
	ctx, span := tracer.Start(ctx, "store.GetFavorite",
		trace.WithAttributes(attribute.Int("favorite.id", int(id))),
	)
	defer span.End()

	favorite, err := s.next.GetFavorite(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return favorite, nil
}

// GetFavoritesByUserID with tracing
func (s *TracingStore) GetFavoritesByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	ctx, span := tracer.Start(ctx, "store.GetFavoritesByUserID",
		trace.WithAttributes(attribute.Int("user.id", int(userID))),
	)
	defer span.End()

	favorites, err := s.next.GetFavoritesByUserID(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("favorites.count", len(favorites)))
	return favorites, nil
}

// RemoveFavorite with tracing
func (s *TracingStore) RemoveFavorite(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "store.RemoveFavorite",
		trace.WithAttributes(attribute.Int("favorite.id", int(id))),
	)
	defer span.End()

	removed, err := s.next.RemoveFavorite(ctx, id)
	if err != nil {
		recordError(span, err)
		return false, err
	}

	span.SetAttributes(attribute.Bool("favorite.removed", removed))
	return removed, nil
}

// AddSearchHistory with tracing
func (s *TracingStore) AddSearchHistory(ctx context.Context, candidate domain.NewSearchHistory) (*domain.SearchHistory, error) {
	attrs := []attribute.KeyValue{attribute.String("search.query", candidate.Query)}
	if candidate.UserID != nil {
		attrs = append(attrs, attribute.Int("user.id", int(*candidate.UserID)))
	}

	ctx, span := tracer.Start(ctx, "store.AddSearchHistory", trace.WithAttributes(attrs...))
	defer span.End()

	entry, err := s.next.AddSearchHistory(ctx, candidate)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return entry, nil
}

// GetRecentSearches with tracing
func (s *TracingStore) GetRecentSearches(ctx context.Context, userID uint, limit int) ([]domain.SearchHistory, error) {
	ctx, span := tracer.Start(ctx, "store.GetRecentSearches",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.Int("search.limit", limit),
		),
	)
	defer span.End()

	entries, err := s.next.GetRecentSearches(ctx, userID, limit)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(entries)))
	return entries, nil
}

var _ domain.Store = (*TracingStore)(nil)
