package console

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Vicky-hu-coder/alx-console/auth"
	"github.com/Vicky-hu-coder/alx-console/backend"
)

const tablePageSize = 10

type dashboardStats struct {
	Customers   int64
	Bills       int64
	Meters      int64
	Users       int64
	ShowUsers   bool
	RecentBills []backend.Bill
}

// dashboard renders the admin or employee dashboard; only admins see the
// user count.
func (c *Console) dashboard(showUsers bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		ctx := r.Context()
		stats := dashboardStats{ShowUsers: showUsers}

		customers, err := c.backend.ListCustomers(ctx, backend.ListQuery{Size: 1})
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		stats.Customers = customers.TotalElements

		bills, err := c.backend.ListBills(ctx, backend.ListQuery{Size: 5})
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		stats.Bills = bills.TotalElements
		stats.RecentBills = bills.Content

		stats.Meters, err = c.backend.MeterCount(ctx)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}

		if showUsers {
			users, err := c.backend.ListUsers(ctx, backend.ListQuery{Size: 1})
			if err != nil {
				c.renderFailure(w, user, err)
				return
			}
			stats.Users = users.TotalElements
		}

		c.render(w, http.StatusOK, "dashboard", pageData{
			Title: "Dashboard",
			User:  user,
			Data:  stats,
		})
	}
}

func (c *Console) customersPage(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		q := backend.ListQuery{
			Page:   queryPage(r),
			Size:   tablePageSize,
			Search: r.URL.Query().Get("search"),
		}
		page, err := c.backend.ListCustomers(r.Context(), q)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		c.render(w, http.StatusOK, "customers", pageData{
			Title: "Customers", User: user, Data: page,
			Search: q.Search, Page: page.Number, TotalPages: page.TotalPages, BasePath: base,
		})
	}
}

func (c *Console) customerCreate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer := backend.Customer{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
		}
		created, err := c.backend.CreateCustomer(r.Context(), customer)
		if err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		// Provision a meter alongside the customer when asked; the backend
		// assigns the meter number.
		if r.FormValue("createMeter") != "" && created.ID != 0 {
			_, err := c.backend.CreateMeter(r.Context(), backend.Meter{
				MeterType:  "POSTPAID",
				Status:     "ACTIVE",
				CustomerID: created.ID,
			})
			if err != nil {
				c.log.Warn("creating meter for new customer failed",
					"customer_id", created.ID, "error", err)
			}
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) customerUpdate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customer := backend.Customer{
			Name:    r.FormValue("name"),
			Email:   r.FormValue("email"),
			Phone:   r.FormValue("phone"),
			Address: r.FormValue("address"),
		}
		if _, err := c.backend.UpdateCustomer(r.Context(), urlID(r), customer); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) customerDelete(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		if err := c.backend.DeleteCustomer(r.Context(), id); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) billsPage(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		q := backend.ListQuery{
			Page:   queryPage(r),
			Size:   tablePageSize,
			Search: r.URL.Query().Get("search"),
		}
		page, err := c.backend.ListBills(r.Context(), q)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		c.render(w, http.StatusOK, "bills", pageData{
			Title: "Bills", User: user, Data: page,
			Search: q.Search, Page: page.Number, TotalPages: page.TotalPages, BasePath: base,
		})
	}
}

func (c *Console) billCreate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bill := backend.Bill{
			UnitsConsumed: formFloat(r, "unitsConsumed"),
			BillingDate:   r.FormValue("billingDate"),
			DueDate:       r.FormValue("dueDate"),
			Amount:        formFloat(r, "amount"),
		}
		if _, err := c.backend.CreateBill(r.Context(), formInt64(r, "customerId"), bill); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) billUpdate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bill := backend.Bill{
			UnitsConsumed: formFloat(r, "unitsConsumed"),
			BillingDate:   r.FormValue("billingDate"),
			DueDate:       r.FormValue("dueDate"),
			Amount:        formFloat(r, "amount"),
			Status:        r.FormValue("status"),
		}
		if _, err := c.backend.UpdateBill(r.Context(), urlID(r), bill); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) billMarkPaid(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.PayBill(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) billDelete(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.DeleteBill(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) paymentsPage(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		q := backend.ListQuery{
			Page:   queryPage(r),
			Size:   tablePageSize,
			Search: r.URL.Query().Get("search"),
		}
		page, err := c.backend.ListPayments(r.Context(), q)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		c.render(w, http.StatusOK, "payments", pageData{
			Title: "Payments", User: user, Data: page,
			Search: q.Search, Page: page.Number, TotalPages: page.TotalPages, BasePath: base,
		})
	}
}

func (c *Console) paymentCreate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payment := backend.Payment{
			AmountPaid:    formFloat(r, "amountPaid"),
			PaymentMethod: r.FormValue("paymentMethod"),
			TransactionID: r.FormValue("transactionId"),
			PaymentDate:   time.Now().UTC().Format(time.RFC3339),
		}
		if _, err := c.backend.CreatePayment(r.Context(), formInt64(r, "billId"), payment); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) paymentDelete(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.DeletePayment(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) metersPage(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		q := backend.ListQuery{
			Page:   queryPage(r),
			Size:   tablePageSize,
			Search: r.URL.Query().Get("search"),
		}
		page, err := c.backend.ListMeters(r.Context(), q)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		c.render(w, http.StatusOK, "meters", pageData{
			Title: "Meters", User: user, Data: page,
			Search: q.Search, Page: page.Number, TotalPages: page.TotalPages, BasePath: base,
		})
	}
}

func (c *Console) meterCreate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meter := backend.Meter{
			MeterNumber:      r.FormValue("meterNumber"),
			MeterType:        r.FormValue("meterType"),
			Status:           "ACTIVE",
			InstallationDate: r.FormValue("installationDate"),
			CustomerID:       formInt64(r, "customerId"),
		}
		if _, err := c.backend.CreateMeter(r.Context(), meter); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) meterUpdate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meter := backend.Meter{
			MeterNumber:      r.FormValue("meterNumber"),
			MeterType:        r.FormValue("meterType"),
			Status:           r.FormValue("status"),
			InstallationDate: r.FormValue("installationDate"),
			CustomerID:       formInt64(r, "customerId"),
		}
		if _, err := c.backend.UpdateMeter(r.Context(), urlID(r), meter); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) meterDelete(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.DeleteMeter(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) usersPage(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := c.identity()
		q := backend.ListQuery{
			Page:   queryPage(r),
			Size:   tablePageSize,
			Search: r.URL.Query().Get("search"),
		}
		page, err := c.backend.ListUsers(r.Context(), q)
		if err != nil {
			c.renderFailure(w, user, err)
			return
		}
		c.render(w, http.StatusOK, "users", pageData{
			Title: "Users", User: user, Data: page,
			Search: q.Search, Page: page.Number, TotalPages: page.TotalPages, BasePath: base,
		})
	}
}

// userCreate provisions a login account for someone else through the same
// registration endpoint self-service uses. The administrator's own session
// stays untouched.
func (c *Console) userCreate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg := auth.Registration{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
			Password:  r.FormValue("password"),
			Role:      r.FormValue("role"),
		}
		if err := c.flow.CreateAccount(r.Context(), reg); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		c.audit.logEvent(AuditRegister, r, reg.Email)
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) userUpdate(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := backend.User{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
			Roles:     []string{"ROLE_" + strings.ToUpper(r.FormValue("role"))},
			Enabled:   r.FormValue("enabled") != "",
		}
		// An empty password field means keep the current one.
		user.Password = r.FormValue("password")
		if _, err := c.backend.UpdateUser(r.Context(), urlID(r), user); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

// userLinkCustomer creates a customer record for a login account so the
// account can use the self-service pages. Linking an already linked
// account is a no-op.
func (c *Console) userLinkCustomer(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlID(r)
		if _, err := c.backend.UserCustomer(r.Context(), id); err == nil {
			http.Redirect(w, r, base, http.StatusSeeOther)
			return
		}
		placeholder := backend.Customer{Phone: "Not provided", Address: "Not provided"}
		if _, err := c.backend.LinkCustomer(r.Context(), id, placeholder); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) userEnable(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.EnableUser(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) userDisable(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.DisableUser(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

func (c *Console) userDelete(base string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := c.backend.DeleteUser(r.Context(), urlID(r)); err != nil {
			c.renderFailure(w, c.identity(), err)
			return
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

type customerHome struct {
	UnpaidBills int
	Meter       backend.Meter
	RecentBills []backend.Bill
}

// customerDashboard renders the customer's own overview. A missing meter
// is not an error; the account may not be provisioned yet.
func (c *Console) customerDashboard(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	home := customerHome{}

	bills, err := c.backend.MyBills(r.Context(), backend.ListQuery{Size: 5})
	if err != nil {
		c.renderFailure(w, user, err)
		return
	}
	home.RecentBills = bills.Content
	for _, b := range bills.Content {
		if !strings.EqualFold(b.Status, "PAID") {
			home.UnpaidBills++
		}
	}

	if meter, err := c.backend.MyMeter(r.Context()); err == nil {
		home.Meter = meter
	}

	c.render(w, http.StatusOK, "customer_dashboard", pageData{
		Title: "My dashboard",
		User:  user,
		Data:  home,
	})
}

func (c *Console) myBills(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	q := backend.ListQuery{Page: queryPage(r), Size: tablePageSize}
	page, err := c.backend.MyBills(r.Context(), q)
	if err != nil {
		c.renderFailure(w, user, err)
		return
	}
	c.render(w, http.StatusOK, "my_bills", pageData{
		Title: "My bills", User: user, Data: page,
		Page: page.Number, TotalPages: page.TotalPages, BasePath: "/customer/my-bills",
	})
}

// payMyBill records a payment against one of the customer's own bills and
// marks the bill paid, in that order. A payment that lands without the
// status flip shows up on the payments page, so nothing is silently lost.
func (c *Console) payMyBill(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	billID := urlID(r)

	payment := backend.Payment{
		AmountPaid:    formFloat(r, "amountPaid"),
		PaymentMethod: r.FormValue("paymentMethod"),
		PaymentDate:   time.Now().UTC().Format(time.RFC3339),
		TransactionID: fmt.Sprintf("TXN-%d", time.Now().UnixMilli()),
	}
	if _, err := c.backend.CreatePayment(r.Context(), billID, payment); err != nil {
		c.renderFailure(w, user, err)
		return
	}
	if err := c.backend.PayBill(r.Context(), billID); err != nil {
		c.renderFailure(w, user, err)
		return
	}
	http.Redirect(w, r, "/customer/my-bills", http.StatusSeeOther)
}

func (c *Console) myPayments(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	q := backend.ListQuery{Page: queryPage(r), Size: tablePageSize}
	page, err := c.backend.MyPayments(r.Context(), q)
	if err != nil {
		c.renderFailure(w, user, err)
		return
	}
	c.render(w, http.StatusOK, "my_payments", pageData{
		Title: "My payments", User: user, Data: page,
		Page: page.Number, TotalPages: page.TotalPages, BasePath: "/customer/my-payments",
	})
}

func (c *Console) myMeter(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	var data *backend.Meter
	if meter, err := c.backend.MyMeter(r.Context()); err == nil {
		data = &meter
	}
	c.render(w, http.StatusOK, "my_meter", pageData{
		Title: "My meter",
		User:  user,
		Data:  data,
	})
}

func (c *Console) profilePage(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	profile, err := c.backend.MyProfile(r.Context())
	if err != nil {
		c.renderFailure(w, user, err)
		return
	}
	c.render(w, http.StatusOK, "profile", pageData{
		Title: "My profile",
		User:  user,
		Data:  profile,
	})
}

func (c *Console) updateProfile(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	profile := backend.Customer{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
	}
	updated, err := c.backend.UpdateMyProfile(r.Context(), profile)
	if err != nil {
		c.renderFailure(w, user, err)
		return
	}
	c.render(w, http.StatusOK, "profile", pageData{
		Title:  "My profile",
		User:   user,
		Notice: "Profile updated.",
		Data:   updated,
	})
}

func (c *Console) requestWattsPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, http.StatusOK, "request_watts", pageData{
		Title: "Request electricity",
		User:  c.identity(),
	})
}

// requestWatts acknowledges a prepaid top-up request. The purchase itself
// is handled out-of-band by the billing office.
func (c *Console) requestWatts(w http.ResponseWriter, r *http.Request) {
	user := c.identity()
	units := formInt64(r, "units")
	if units <= 0 {
		c.render(w, http.StatusBadRequest, "request_watts", pageData{
			Title: "Request electricity",
			User:  user,
			Error: "enter a positive number of units",
		})
		return
	}
	c.log.Info("watts requested", "email", user.Email, "units", units)
	c.render(w, http.StatusOK, "request_watts", pageData{
		Title:  "Request electricity",
		User:   user,
		Notice: "submitted",
	})
}

func urlID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
