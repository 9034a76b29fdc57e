package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
)

// memoryRepo keeps orders in process memory. It follows the same contract as
// the SQL store and is used for tests and local runs without a database.
type memoryRepo struct {
	mu     sync.RWMutex
	orders map[int64]entities.Order
	nextID int64
	now    func() time.Time
}

func NewMemoryRepo() *memoryRepo {
	return &memoryRepo{
		orders: make(map[int64]entities.Order),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source.
func (r *memoryRepo) WithClock(now func() time.Time) *memoryRepo {
	r.now = now
	return r
}

func (r *memoryRepo) CreateOrder(_ context.Context, d entities.OrderDraft) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insert(d), nil
}

func (r *memoryRepo) insert(d entities.OrderDraft) int64 {
	id := r.nextID
	r.nextID++
	r.orders[id] = entities.Order{
		ID:           id,
		CustomerName: d.CustomerName,
		ItemName:     d.ItemName,
		Quantity:     d.Quantity,
		TotalPrice:   CentsToDecimal(DecimalToCents(d.TotalPrice)),
		CreatedAt:    r.now(),
	}
	return id
}

func (r *memoryRepo) ListOrders(_ context.Context) ([]entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		result = append(result, o)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *memoryRepo) GetOrderByID(_ context.Context, rawID string) (entities.Order, error) {
	id, err := entities.ParseOrderID(rawID)
	if err != nil {
		return entities.Order{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return order, nil
}

func (r *memoryRepo) EnsureSchema(_ context.Context) error {
	return nil
}

func (r *memoryRepo) SeedIfEmpty(_ context.Context, drafts []entities.OrderDraft) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.orders) > 0 {
		return 0, nil
	}
	for _, d := range drafts {
		r.insert(d)
	}
	return len(drafts), nil
}
