package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copebusiness/portal/internal/api/metrics"
	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
)

// InvoiceHandler serves invoices. Clients read their own; admins issue and
// settle them.
type InvoiceHandler struct {
	invoices ports.InvoiceService
}

func NewInvoiceHandler(invoices ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// Create issues an invoice. Line totals and the amount are computed server-side.
//
// @Summary      Create an invoice
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Client, due date and line items"
// @Success      201   {object}  domain.Invoice
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req createInvoiceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in, err := toInvoiceInput(req)
	if err != nil {
		return err
	}

	inv, err := h.invoices.Create(c.Request().Context(), a, in)
	if err != nil {
		return err
	}
	metrics.InvoicesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, inv)
}

// MarkPaid settles an invoice. Paying a paid invoice returns it unchanged.
//
// @Summary      Mark invoice paid
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	inv, err := h.invoices.MarkPaid(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// List handles GET /v1/invoices and GET /v1/admin/invoices.
//
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Pending or Paid"
// @Param        limit   query     int     false  "Maximum number of invoices"
// @Success      200     {object}  listResponse[domain.Invoice]
// @Router       /v1/invoices [get]
// @Router       /v1/admin/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	invoices, err := h.invoices.List(c.Request().Context(), a, ports.InvoiceFilter{
		Status: domain.InvoiceStatus(c.QueryParam("status")),
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(invoices))
}

// Get handles GET /v1/invoices/:id.
//
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  errorResponse
// @Router       /v1/invoices/{id} [get]
// @Router       /v1/admin/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	inv, err := h.invoices.Get(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// ReportHandler serves performance reports.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Create drafts a report for a client.
//
// @Summary      Create a report
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReportRequest  true  "Client, title and content"
// @Success      201   {object}  domain.Report
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/reports [post]
func (h *ReportHandler) Create(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	var req createReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	rep, err := h.reports.Create(c.Request().Context(), a, ports.CreateReportInput{
		ClientID: req.ClientID,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rep)
}

// Send publishes a draft to its client.
//
// @Summary      Send a report
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/reports/{id}/send [post]
func (h *ReportHandler) Send(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	rep, err := h.reports.Send(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}

// List handles GET /v1/reports and GET /v1/admin/reports. Clients only see
// sent reports.
//
// @Summary      List reports
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Draft or Sent (admin only)"
// @Success      200     {object}  listResponse[domain.Report]
// @Router       /v1/reports [get]
// @Router       /v1/admin/reports [get]
func (h *ReportHandler) List(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}
	reports, err := h.reports.List(c.Request().Context(), a, ports.ReportFilter{
		Status: domain.ReportStatus(c.QueryParam("status")),
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(reports))
}

// Get handles GET /v1/reports/:id.
//
// @Summary      Get a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  domain.Report
// @Failure      404  {object}  errorResponse
// @Router       /v1/reports/{id} [get]
// @Router       /v1/admin/reports/{id} [get]
func (h *ReportHandler) Get(c echo.Context) error {
	a, err := actor(c)
	if err != nil {
		return err
	}
	rep, err := h.reports.Get(c.Request().Context(), a, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rep)
}
