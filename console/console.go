// Package console is the HTTP layer of the ALX operator console: it wires
// the route table, gates every protected page through the guard, drives
// the authentication flow from the login and OTP forms, and renders the
// role-specific pages over the backend client.
package console

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"

	"github.com/Vicky-hu-coder/alx-console/auth"
	"github.com/Vicky-hu-coder/alx-console/backend"
	"github.com/Vicky-hu-coder/alx-console/guard"
	"github.com/Vicky-hu-coder/alx-console/session"
	"github.com/Vicky-hu-coder/alx-console/web"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Console holds the dependencies needed by the page handlers.
type Console struct {
	store   *session.Store
	flow    *auth.Flow
	backend *backend.Client
	audit   *auditLogger
	log     *slog.Logger
	tmpl    *template.Template
	static  http.Handler
}

// Option configures the Console instance.
type Option func(*Console)

// WithLogger sets the structured logger used for audit events and
// operational diagnostics. If not set, a JSON logger writing to stderr is
// used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		c.log = logger
		c.audit = newAuditLogger(logger)
	}
}

// New creates a Console over the given session store, auth flow and
// backend client.
func New(store *session.Store, flow *auth.Flow, client *backend.Client, opts ...Option) (*Console, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	static, err := web.StaticHandler()
	if err != nil {
		return nil, err
	}
	c := &Console{
		store:   store,
		flow:    flow,
		backend: client,
		tmpl:    tmpl,
		static:  static,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewJSONHandler(os.Stderr, nil))
		c.audit = newAuditLogger(c.log)
	}
	return c, nil
}

// Router returns a chi.Router with the full console route table mounted.
func (c *Console) Router() chi.Router {
	r := chi.NewRouter()

	r.Handle("/static/*", c.static)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
	}, nil))
	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/openapi.yaml",
		Path:    "redoc",
	}, nil))

	// Public auth pages.
	r.Get("/login", c.loginPage)
	r.Post("/login", c.login)
	r.Get("/otp", c.otpPage)
	r.Post("/otp", c.verifyOTP)
	r.Get("/register", c.registerPage)
	r.Post("/register", c.register)
	r.Get("/forgot-password", c.forgotPasswordPage)
	r.Post("/forgot-password", c.forgotPassword)
	r.Get("/reset-password", c.resetPasswordPage)
	r.Post("/reset-password", c.resetPassword)
	r.Post("/logout", c.logout)

	// Admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(c.guarded(guard.RequireRoles(session.RoleAdmin)))
		r.Get("/", redirectTo("/admin/dashboard"))
		r.Get("/dashboard", c.dashboard(true))
		c.mountEntityPages(r, "/admin")
		r.Get("/users", c.usersPage("/admin/users"))
		r.Post("/users", c.userCreate("/admin/users"))
		r.Post("/users/{id}/edit", c.userUpdate("/admin/users"))
		r.Post("/users/{id}/link-customer", c.userLinkCustomer("/admin/users"))
		r.Post("/users/{id}/enable", c.userEnable("/admin/users"))
		r.Post("/users/{id}/disable", c.userDisable("/admin/users"))
		r.Post("/users/{id}/delete", c.userDelete("/admin/users"))
	})

	// Employee area shares the entity pages, without user management.
	r.Route("/employee", func(r chi.Router) {
		r.Use(c.guarded(guard.RequireRoles(session.RoleEmployee)))
		r.Get("/", redirectTo("/employee/dashboard"))
		r.Get("/dashboard", c.dashboard(false))
		c.mountEntityPages(r, "/employee")
	})

	// Customer self-service area.
	r.Route("/customer", func(r chi.Router) {
		r.Use(c.guarded(guard.RequireRoles(session.RoleCustomer)))
		r.Get("/", redirectTo("/customer/dashboard"))
		r.Get("/dashboard", c.customerDashboard)
		r.Get("/my-bills", c.myBills)
		r.Post("/my-bills/{id}/pay", c.payMyBill)
		r.Get("/my-payments", c.myPayments)
		r.Get("/my-meter", c.myMeter)
		r.Get("/request-watts", c.requestWattsPage)
		r.Post("/request-watts", c.requestWatts)
		r.Get("/profile", c.profilePage)
		r.Post("/profile", c.updateProfile)
	})

	// Site root and legacy bare paths route to the role home.
	for _, path := range []string{"/", "/dashboard", "/customers", "/bills", "/payments", "/meters", "/users"} {
		r.Get(path, c.homeRedirect)
	}

	r.NotFound(redirectTo(guard.LoginPath))

	return r
}

// mountEntityPages mounts the customer/bill/payment/meter pages shared by
// the admin and employee areas under the given base path.
func (c *Console) mountEntityPages(r chi.Router, base string) {
	r.Get("/customers", c.customersPage(base+"/customers"))
	r.Post("/customers", c.customerCreate(base+"/customers"))
	r.Post("/customers/{id}/edit", c.customerUpdate(base+"/customers"))
	r.Post("/customers/{id}/delete", c.customerDelete(base+"/customers"))

	r.Get("/bills", c.billsPage(base+"/bills"))
	r.Post("/bills", c.billCreate(base+"/bills"))
	r.Post("/bills/{id}/edit", c.billUpdate(base+"/bills"))
	r.Post("/bills/{id}/pay", c.billMarkPaid(base+"/bills"))
	r.Post("/bills/{id}/delete", c.billDelete(base+"/bills"))

	r.Get("/payments", c.paymentsPage(base+"/payments"))
	r.Post("/payments", c.paymentCreate(base+"/payments"))
	r.Post("/payments/{id}/delete", c.paymentDelete(base+"/payments"))

	r.Get("/meters", c.metersPage(base+"/meters"))
	r.Post("/meters", c.meterCreate(base+"/meters"))
	r.Post("/meters/{id}/edit", c.meterUpdate(base+"/meters"))
	r.Post("/meters/{id}/delete", c.meterDelete(base+"/meters"))
}

// guarded evaluates the route guard against the current session before
// every page render and turns redirect decisions into 303 responses.
func (c *Console) guarded(req *guard.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := guard.Evaluate(c.store.Snapshot(), req)
			if decision.Action != guard.Allow {
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// homeRedirect handles the site root and the legacy bare paths.
func (c *Console) homeRedirect(w http.ResponseWriter, r *http.Request) {
	decision := guard.HomeRedirect(c.store.Snapshot())
	http.Redirect(w, r, decision.Location, http.StatusSeeOther)
}
