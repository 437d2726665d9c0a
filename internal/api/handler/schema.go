package handler

import (
	"time"

	"github.com/copebusiness/portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"            validate:"required"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type changePasswordRequest struct {
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type authResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Session   domain.Session `json:"session"`
}

type signupResponse struct {
	NeedsConfirmation bool          `json:"needs_confirmation"`
	Auth              *authResponse `json:"auth,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Profile / navigation ---

type updateProfileRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=1"`
	Company   *string `json:"company"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type navigateResponse struct {
	Path     string          `json:"path"`
	Decision domain.Decision `json:"decision"`
	Session  navigateSession `json:"session"`
}

type navigateSession struct {
	IsAuthenticated bool        `json:"is_authenticated"`
	Role            domain.Role `json:"role,omitempty"`
}

// --- Orders / wallet ---

type purchaseRequest struct {
	ServiceID int    `json:"service_id" validate:"required,gt=0"`
	Plan      string `json:"plan"       validate:"required,oneof=Basic Standard Premium"`
}

type purchaseResponse struct {
	Order    *domain.Order `json:"order"`
	Balance  domain.Money  `json:"wallet_balance"`
	Replayed bool          `json:"replayed,omitempty"`
}

type updateProgressRequest struct {
	Progress *int `json:"progress" validate:"required,min=0,max=100"`
}

type addFundsRequest struct {
	Amount        domain.Money `json:"amount"         validate:"required,gt=0,max=100000000"`
	PaymentMethod string       `json:"payment_method" validate:"required,oneof=card paypal"`
}

type walletResponse struct {
	Balance domain.Money `json:"wallet_balance"`
}

// --- Invoices / reports ---

type lineItemRequest struct {
	Description string       `json:"description" validate:"required"`
	Quantity    int          `json:"quantity"    validate:"gte=0,max=1000000"`
	UnitPrice   domain.Money `json:"unit_price"  validate:"gte=0,max=100000000"`
}

type createInvoiceRequest struct {
	ClientID string            `json:"client_id"  validate:"required"`
	DueDate  string            `json:"due_date"   validate:"required,datetime=2006-01-02"`
	Items    []lineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

type createReportRequest struct {
	ClientID string `json:"client_id" validate:"required"`
	Title    string `json:"title"     validate:"required"`
	Content  string `json:"content"   validate:"required"`
}

// --- Tickets ---

type createTicketRequest struct {
	Subject  string `json:"subject"  validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Message  string `json:"message"  validate:"required"`
}

type replyRequest struct {
	Message string `json:"message" validate:"required"`
}

type ticketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open Resolved"`
}

// --- Dashboards ---

// Response-only types owned by the transport layer. The ports types carry no
// JSON tags so the contract is not coupled to service changes.

type clientDashboardResponse struct {
	WalletBalance   domain.Money    `json:"wallet_balance"`
	ActiveOrders    int64           `json:"active_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	OpenTickets     int64           `json:"open_tickets"`
	RecentOrders    []*domain.Order `json:"recent_orders"`
}

type adminDashboardResponse struct {
	TotalClients    int64             `json:"total_clients"`
	OpenTickets     int64             `json:"open_tickets"`
	PendingInvoices int64             `json:"pending_invoices"`
	ActiveOrders    int64             `json:"active_orders"`
	RecentTickets   []*domain.Ticket  `json:"recent_tickets"`
	RecentInvoices  []*domain.Invoice `json:"recent_invoices"`
}

type clientSummaryResponse struct {
	Profile       *domain.Profile `json:"profile"`
	OrdersCount   int64           `json:"orders_count"`
	TicketsCount  int64           `json:"tickets_count"`
	InvoicesCount int64           `json:"invoices_count"`
	TotalSpent    domain.Money    `json:"total_spent"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}
