package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SergeyBogomolovv/shop-orders/internal/entities"
	"github.com/SergeyBogomolovv/shop-orders/internal/service"
	"github.com/SergeyBogomolovv/shop-orders/internal/validation"
	"github.com/SergeyBogomolovv/shop-orders/pkg/utils"
	"github.com/go-chi/chi/v5"
)

const sourceHTTP = "http"

type OrderService interface {
	CreateOrder(ctx context.Context, raw any) (int64, error)
	ListOrders(ctx context.Context) ([]entities.Order, error)
	GetOrder(ctx context.Context, rawID string) (entities.Order, error)
}

type HTTPHandler struct {
	logger *slog.Logger
	svc    OrderService
}

func NewHTTPHandler(logger *slog.Logger, svc OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger: logger.With(slog.String("handler", "http")),
		svc:    svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders/{id}", h.GetOrder)
}

// ListOrders returns every order, newest first.
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}   Order
// @Failure      500  {object}  utils.ErrorResponse "Storage failure"
// @Router       /orders [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.svc.ListOrders(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err))
		utils.WriteError(w, "failed to fetch orders", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrdersEntityToJSON(orders), http.StatusOK)
}

// GetOrder returns a single order.
// @Summary      Get order by id
// @Tags         orders
// @Produce      json
// @Param        id   path      string  true  "Order id, decimal digits only"
// @Success      200  {object}  Order
// @Failure      400  {object}  utils.ErrorResponse "Malformed order id"
// @Failure      404  {object}  utils.ErrorResponse "Order not found"
// @Failure      500  {object}  utils.ErrorResponse "Storage failure"
// @Router       /orders/{id} [get]
func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawID := chi.URLParam(r, "id")

	order, err := h.svc.GetOrder(ctx, rawID)

	switch {
	case errors.Is(err, entities.ErrMalformedOrderID):
		utils.WriteError(w, "invalid order id format", http.StatusBadRequest)
		return
	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", rawID))
		utils.WriteError(w, "failed to fetch order details", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// CreateOrder validates and stores a new order.
// @Summary      Create order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      CreateOrderRequest  true  "New order"
// @Success      201    {object}  CreateOrderResponse
// @Failure      400    {object}  utils.ValidationErrorResponse "Validation failed"
// @Failure      500    {object}  utils.ErrorResponse "Storage failure"
// @Router       /orders [post]
func (h *HTTPHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var raw any
	if err := utils.DecodeBody(r, &raw); err != nil {
		ordersRejected.WithLabelValues(sourceHTTP).Inc()
		if errors.Is(err, utils.ErrEmptyBody) {
			utils.WriteValidationErrors(w, []string{validation.MsgBodyRequired})
			return
		}
		utils.WriteValidationErrors(w, []string{validation.MsgInvalidFormat})
		return
	}

	id, err := h.svc.CreateOrder(ctx, raw)
	if msgs, ok := service.IsValidationError(err); ok {
		ordersRejected.WithLabelValues(sourceHTTP).Inc()
		utils.WriteValidationErrors(w, msgs)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create order", slog.Any("error", err))
		utils.WriteError(w, "failed to create order", http.StatusInternalServerError)
		return
	}

	ordersCreated.WithLabelValues(sourceHTTP).Inc()
	utils.WriteJSON(w, CreateOrderResponse{
		Message: "Order successfully created",
		OrderID: id,
	}, http.StatusCreated)
}
