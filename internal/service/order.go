package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/SergeyBogomolovv/shop-orders/pkg/trm"
)

type OrderValidator interface {
	Validate(raw any) (entities.OrderDraft, error)
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, d entities.OrderDraft) (int64, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	GetOrderByID(ctx context.Context, rawID string) (entities.Order, error)

	EnsureSchema(ctx context.Context) error
	SeedIfEmpty(ctx context.Context, drafts []entities.OrderDraft) (int, error)
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	validator OrderValidator
	repo      OrderRepo
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, validator OrderValidator, repo OrderRepo) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		validator: validator,
		repo:      repo,
	}
}

// CreateOrder validates raw input and stores it. Invalid input never reaches the store
// and is reported as *entities.ValidationError.
func (s *orderService) CreateOrder(ctx context.Context, raw any) (int64, error) {
	draft, err := s.validator.Validate(raw)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		id, err = s.repo.CreateOrder(ctx, draft)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Debug("order created", slog.Int64("order_id", id))
	return id, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *orderService) GetOrder(ctx context.Context, rawID string) (entities.Order, error) {
	return s.repo.GetOrderByID(ctx, rawID)
}

// Bootstrap creates the schema and inserts the seed orders into an empty table.
// Running it again is a no-op.
func (s *orderService) Bootstrap(ctx context.Context) error {
	seeds := make([]entities.OrderDraft, 0, len(SeedOrders))
	for i, raw := range SeedOrders {
		draft, err := s.validator.Validate(raw)
		if err != nil {
			return fmt.Errorf("invalid seed order %d: %w", i, err)
		}
		seeds = append(seeds, draft)
	}

	var inserted int
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.EnsureSchema(ctx); err != nil {
			return err
		}
		var err error
		inserted, err = s.repo.SeedIfEmpty(ctx, seeds)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to bootstrap storage: %w", err)
	}

	s.logger.Info("storage ready", slog.Int("seeded", inserted))
	return nil
}

// IsValidationError reports whether err was caused by rejected input.
func IsValidationError(err error) ([]string, bool) {
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		return ve.Messages, true
	}
	return nil, false
}
