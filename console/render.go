package console

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vicky-hu-coder/alx-console/backend"
	"github.com/Vicky-hu-coder/alx-console/session"
)

type navLink struct {
	Label string
	Path  string
}

var (
	adminNav = []navLink{
		{"Dashboard", "/admin/dashboard"},
		{"Customers", "/admin/customers"},
		{"Bills", "/admin/bills"},
		{"Payments", "/admin/payments"},
		{"Meters", "/admin/meters"},
		{"Users", "/admin/users"},
	}
	employeeNav = []navLink{
		{"Dashboard", "/employee/dashboard"},
		{"Customers", "/employee/customers"},
		{"Bills", "/employee/bills"},
		{"Payments", "/employee/payments"},
		{"Meters", "/employee/meters"},
	}
	customerNav = []navLink{
		{"Dashboard", "/customer/dashboard"},
		{"My bills", "/customer/my-bills"},
		{"My payments", "/customer/my-payments"},
		{"My meter", "/customer/my-meter"},
		{"Request watts", "/customer/request-watts"},
		{"Profile", "/customer/profile"},
	}
)

// pageData is the view model shared by every template.
type pageData struct {
	Title  string
	User   *session.User
	Error  string
	Notice string
	Nav    []navLink
	Data   any

	// Table paging state.
	Search     string
	Page       int
	TotalPages int
	BasePath   string
}

// render executes the named page template. The sidebar is derived from the
// current identity's role; auth pages pass no user and get no chrome.
func (c *Console) render(w http.ResponseWriter, status int, name string, data pageData) {
	if data.User != nil && data.Nav == nil {
		switch data.User.ParsedRole() {
		case session.RoleAdmin:
			data.Nav = adminNav
		case session.RoleEmployee:
			data.Nav = employeeNav
		default:
			data.Nav = customerNav
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.tmpl.ExecuteTemplate(w, name, data); err != nil {
		c.log.Error("rendering template failed", "template", name, "error", err)
	}
}

// renderFailure shows the error page for a failed backend call. The
// extracted message is displayed as-is; a 401 is not treated specially.
func (c *Console) renderFailure(w http.ResponseWriter, user *session.User, err error) {
	status := http.StatusBadGateway
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			status = http.StatusBadRequest
		}
	}
	c.render(w, status, "error", pageData{
		Title: "Error",
		User:  user,
		Data:  err.Error(),
	})
}

// identity returns the current full identity, or nil when the session is
// not established.
func (c *Console) identity() *session.User {
	snap := c.store.Snapshot()
	if !snap.Authenticated() {
		return nil
	}
	return snap.Identity
}

func redirectTo(location string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

func formInt64(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(r.FormValue(name), 10, 64)
	return n
}

func formFloat(r *http.Request, name string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(name), 64)
	return f
}

func queryPage(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
