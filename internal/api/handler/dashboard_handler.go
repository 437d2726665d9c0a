package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/core/ports"
)

type DashboardHandler struct {
	dashboards ports.DashboardService
}

func NewDashboardHandler(dashboards ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Client handles GET /v1/dashboard.
//
// @Summary      Client dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  clientDashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Client(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	d, err := h.dashboards.Client(c.Request().Context(), a.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientDashboard(d))
}

// Admin handles GET /v1/admin/dashboard.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminDashboardResponse
// @Router       /v1/admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	d, err := h.dashboards.Admin(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminDashboard(d))
}

// Clients handles GET /v1/admin/clients.
//
// @Summary      List clients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listResponse[domain.Profile]
// @Router       /v1/admin/clients [get]
func (h *DashboardHandler) Clients(c echo.Context) error {
	clients, err := h.dashboards.Clients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(clients))
}

// ClientDetail handles GET /v1/admin/clients/:id.
//
// @Summary      Client detail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client profile ID"
// @Success      200  {object}  clientSummaryResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/clients/{id} [get]
func (h *DashboardHandler) ClientDetail(c echo.Context) error {
	s, err := h.dashboards.ClientSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientSummary(s))
}
