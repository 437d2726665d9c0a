package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

type WalletHandler struct {
	wallet ports.WalletService
}

func NewWalletHandler(wallet ports.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// Balance handles GET /v1/wallet.
//
// @Summary      Wallet balance
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  walletResponse
// @Router       /v1/wallet [get]
func (h *WalletHandler) Balance(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	balance, err := h.wallet.Balance(c.Request().Context(), a.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, walletResponse{Balance: balance})
}

// AddFunds tops up the wallet.
//
// @Summary      Add funds
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addFundsRequest  true  "Amount and payment method"
// @Success      200   {object}  walletResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/wallet/funds [post]
func (h *WalletHandler) AddFunds(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req addFundsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	balance, err := h.wallet.AddFunds(c.Request().Context(), ports.AddFundsInput{
		ClientID:      a.ID,
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return err
	}
	metrics.WalletCreditsTotal.WithLabelValues(req.PaymentMethod).Inc()
	return c.JSON(http.StatusOK, walletResponse{Balance: balance})
}

// Transactions handles GET /v1/wallet/transactions.
//
// @Summary      Wallet ledger
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of entries"
// @Success      200    {object}  listResponse[domain.WalletTransaction]
// @Router       /v1/wallet/transactions [get]
func (h *WalletHandler) Transactions(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	txs, err := h.wallet.Transactions(c.Request().Context(), a.ID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(txs))
}
