package domain

import "strings"

// GateAction is the outcome of an authorization decision.
type GateAction string

const (
	GateLoading  GateAction = "loading"
	GateRedirect GateAction = "redirect"
	GateRender   GateAction = "render"
)

const (
	LoginPath  = "/login"
	AdminRoot  = "/admin"
	ClientRoot = "/dashboard"
)

// Decision tells the caller whether to wait, redirect, or render.
type Decision struct {
	Action GateAction `json:"action"`
	Target string     `json:"target,omitempty"`
}

// DashboardRoot is the landing path for a role.
func DashboardRoot(r Role) string {
	if r == RoleAdmin {
		return AdminRoot
	}
	return ClientRoot
}

// Authorize decides access to a view requiring the given role. An empty
// requiredRole only demands authentication.
func Authorize(s Session, requiredRole Role) Decision {
	if s.IsLoading {
		return Decision{Action: GateLoading}
	}
	if !s.IsAuthenticated || s.User == nil {
		return Decision{Action: GateRedirect, Target: LoginPath}
	}
	if requiredRole != "" && s.User.Role != requiredRole {
		return Decision{Action: GateRedirect, Target: DashboardRoot(s.User.Role)}
	}
	return Decision{Action: GateRender}
}

// Route is a browser route of the portal.
type Route struct {
	Path   string `json:"path"`
	Public bool   `json:"public"`
	Role   Role   `json:"role,omitempty"`
}

// Routes is the portal's route table.
var Routes = []Route{
	{Path: "/", Public: true},
	{Path: LoginPath, Public: true},
	{Path: "/signup", Public: true},
	{Path: "/forgot-password", Public: true},
	{Path: ClientRoot, Role: RoleClient},
	{Path: ClientRoot + "/services", Role: RoleClient},
	{Path: ClientRoot + "/orders", Role: RoleClient},
	{Path: ClientRoot + "/wallet", Role: RoleClient},
	{Path: ClientRoot + "/invoices", Role: RoleClient},
	{Path: ClientRoot + "/reports", Role: RoleClient},
	{Path: ClientRoot + "/tickets", Role: RoleClient},
	{Path: ClientRoot + "/settings", Role: RoleClient},
	{Path: AdminRoot, Role: RoleAdmin},
	{Path: AdminRoot + "/clients", Role: RoleAdmin},
	{Path: AdminRoot + "/tickets", Role: RoleAdmin},
	{Path: AdminRoot + "/invoices", Role: RoleAdmin},
	{Path: AdminRoot + "/reports", Role: RoleAdmin},
	{Path: AdminRoot + "/settings", Role: RoleAdmin},
}

// LookupRoute finds the route for a browser path, ignoring a trailing slash.
func LookupRoute(path string) (Route, bool) {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Navigate applies the gate to a browser path.
func Navigate(s Session, path string) (Decision, bool) {
	r, ok := LookupRoute(path)
	if !ok {
		return Decision{}, false
	}
	if r.Public {
		return Decision{Action: GateRender}, true
	}
	return Authorize(s, r.Role), true
}
