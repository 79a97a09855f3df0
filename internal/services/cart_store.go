package services

import (
	"context"
	"sync"
	"time"

	"github.com/SigNoz/cart-graphql-api/internal/models"
	"github.com/google/uuid"
)

// CartStore owns the carts. GetOrCreate makes the lazy creation policy
// explicit; Save replaces the stored cart for its user.
type CartStore interface {
	GetOrCreate(ctx context.Context, userID string) (*models.Cart, error)
	Get(ctx context.Context, userID string) (*models.Cart, bool, error)
	Save(ctx context.Context, cart *models.Cart) error
	Count(ctx context.Context) (total int, nonEmpty int, err error)
}

// MemoryCartStore keeps carts for the process lifetime. Returned carts are
// copies; mutations only become visible through Save.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
	now   func() time.Time
}

// NewMemoryCartStore creates an empty store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]*models.Cart),
		now:   time.Now,
	}
}

// GetOrCreate returns the cart for userID, creating an empty one on first access
func (s *MemoryCartStore) GetOrCreate(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		now := s.now().UTC()
		cart = &models.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []models.CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.carts[userID] = cart
	}
	return cart.Clone(), nil
}

// Get returns the cart for userID without creating it
func (s *MemoryCartStore) Get(_ context.Context, userID string) (*models.Cart, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return nil, false, nil
	}
	return cart.Clone(), true, nil
}

// Save stores a copy of cart under its user ID
func (s *MemoryCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.UserID] = cart.Clone()
	return nil
}

// Count reports how many carts exist and how many hold at least one line
func (s *MemoryCartStore) Count(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nonEmpty := 0
	for _, c := range s.carts {
		if len(c.Items) > 0 {
			nonEmpty++
		}
	}
	return len(s.carts), nonEmpty, nil
}
