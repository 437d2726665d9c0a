package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// OrderHandler handles plan purchases and order tracking.
type OrderHandler struct {
	orders ports.OrderService
	wallet ports.WalletService
}

func NewOrderHandler(orders ports.OrderService, wallet ports.WalletService) *OrderHandler {
	return &OrderHandler{orders: orders, wallet: wallet}
}

// Purchase buys a service plan with the wallet balance.
//
// @Summary      Purchase a plan
// @Description  Creates a Pending order and debits the plan price atomically. Retries with the same Idempotency-Key return the original order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string           false  "Client-generated key for safe retries"
// @Param        body             body      purchaseRequest  true   "Service and plan"
// @Success      201              {object}  purchaseResponse
// @Success      200              {object}  purchaseResponse  "Replayed purchase"
// @Failure      402              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Purchase(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req purchaseRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	res, err := h.wallet.Purchase(c.Request().Context(), ports.PurchaseInput{
		ClientID:       a.ID,
		ServiceID:      req.ServiceID,
		Plan:           domain.Plan(req.Plan),
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrInsufficientFunds) {
			result = "insufficient_funds"
		}
		metrics.PurchasesTotal.WithLabelValues(req.Plan, result).Inc()
		return err
	}

	status := http.StatusCreated
	result := "success"
	if res.Replayed {
		status = http.StatusOK
		result = "replayed"
	}
	metrics.PurchasesTotal.WithLabelValues(req.Plan, result).Inc()

	return c.JSON(status, purchaseResponse{Order: res.Order, Balance: res.Balance, Replayed: res.Replayed})
}

// List returns the caller's orders; admins see every order.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pending, In Progress or Completed"
// @Param        limit   query     int     false  "Maximum number of orders"
// @Success      200     {object}  listResponse[domain.Order]
// @Router       /v1/orders [get]
// @Router       /v1/admin/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	f := ports.OrderFilter{Limit: limit}
	if s := c.QueryParam("status"); s != "" {
		f.Statuses = []domain.OrderStatus{domain.OrderStatus(s)}
	}

	orders, err := h.orders.List(c.Request().Context(), a, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(orders))
}

// Get handles GET /v1/orders/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID (e.g. ORD-7A8B9C2D)"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  errorResponse
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	o, err := h.orders.Get(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// UpdateProgress sets an order's progress; the status follows it.
//
// @Summary      Update order progress
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Order ID"
// @Param        body  body      updateProgressRequest  true  "Progress 0-100"
// @Success      200   {object}  domain.Order
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/orders/{id}/progress [patch]
func (h *OrderHandler) UpdateProgress(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req updateProgressRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	o, err := h.orders.UpdateProgress(c.Request().Context(), a, c.Param("id"), *req.Progress)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, o)
}

// CatalogHandler serves the fixed service catalog.
type CatalogHandler struct {
	catalog domain.Catalog
}

func NewCatalogHandler(catalog domain.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns every service with its plans.
//
// @Summary      Service catalog
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  listResponse[domain.Service]
// @Router       /v1/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, newList([]domain.Service(h.catalog)))
}
