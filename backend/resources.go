package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListCustomers returns a page of customers.
func (c *Client) ListCustomers(ctx context.Context, q ListQuery) (Page[Customer], error) {
	var page Page[Customer]
	err := c.get(ctx, "/customers", q.values(), &page)
	return page, err
}

// CreateCustomer provisions a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (Customer, error) {
	var created Customer
	err := c.post(ctx, "/customers", nil, customer, &created)
	return created, err
}

// UpdateCustomer replaces an existing customer record.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, customer Customer) (Customer, error) {
	var updated Customer
	err := c.put(ctx, fmt.Sprintf("/customers/%d", id), customer, &updated)
	return updated, err
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%d", id))
}

// ListBills returns a page of bills.
func (c *Client) ListBills(ctx context.Context, q ListQuery) (Page[Bill], error) {
	var page Page[Bill]
	err := c.get(ctx, "/bills", q.values(), &page)
	return page, err
}

// CreateBill issues a bill for the given customer. The customer is
// addressed by query parameter, matching the platform contract.
func (c *Client) CreateBill(ctx context.Context, customerID int64, bill Bill) (Bill, error) {
	query := url.Values{"customerId": {strconv.FormatInt(customerID, 10)}}
	var created Bill
	err := c.post(ctx, "/bills", query, bill, &created)
	return created, err
}

// UpdateBill replaces an existing bill.
func (c *Client) UpdateBill(ctx context.Context, id int64, bill Bill) (Bill, error) {
	var updated Bill
	err := c.put(ctx, fmt.Sprintf("/bills/%d", id), bill, &updated)
	return updated, err
}

// DeleteBill removes a bill.
func (c *Client) DeleteBill(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/bills/%d", id))
}

// PayBill marks a bill as paid.
func (c *Client) PayBill(ctx context.Context, id int64) error {
	return c.patch(ctx, fmt.Sprintf("/bills/pay/%d", id))
}

// ListPayments returns a page of payments.
func (c *Client) ListPayments(ctx context.Context, q ListQuery) (Page[Payment], error) {
	var page Page[Payment]
	err := c.get(ctx, "/payments", q.values(), &page)
	return page, err
}

// CreatePayment records a payment against the given bill.
func (c *Client) CreatePayment(ctx context.Context, billID int64, payment Payment) (Payment, error) {
	query := url.Values{"billId": {strconv.FormatInt(billID, 10)}}
	var created Payment
	err := c.post(ctx, "/payments", query, payment, &created)
	return created, err
}

// DeletePayment removes a payment record.
func (c *Client) DeletePayment(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/payments/%d", id))
}

// ListMeters returns a page of meters.
func (c *Client) ListMeters(ctx context.Context, q ListQuery) (Page[Meter], error) {
	var page Page[Meter]
	err := c.get(ctx, "/meters", q.values(), &page)
	return page, err
}

// CreateMeter registers a new meter.
func (c *Client) CreateMeter(ctx context.Context, meter Meter) (Meter, error) {
	var created Meter
	err := c.post(ctx, "/meters", nil, meter, &created)
	return created, err
}

// UpdateMeter replaces an existing meter.
func (c *Client) UpdateMeter(ctx context.Context, id int64, meter Meter) (Meter, error) {
	var updated Meter
	err := c.put(ctx, fmt.Sprintf("/meters/%d", id), meter, &updated)
	return updated, err
}

// DeleteMeter removes a meter.
func (c *Client) DeleteMeter(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/meters/%d", id))
}

// MeterCount returns the total number of registered meters.
func (c *Client) MeterCount(ctx context.Context) (int64, error) {
	var count int64
	err := c.get(ctx, "/meters/count", nil, &count)
	return count, err
}

// ListUsers returns a page of login accounts.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (Page[User], error) {
	var page Page[User]
	err := c.get(ctx, "/users", q.values(), &page)
	return page, err
}

// UpdateUser replaces an existing login account.
func (c *Client) UpdateUser(ctx context.Context, id int64, user User) (User, error) {
	var updated User
	err := c.put(ctx, fmt.Sprintf("/users/%d", id), user, &updated)
	return updated, err
}

// DeleteUser removes a login account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

// EnableUser reactivates a disabled login account.
func (c *Client) EnableUser(ctx context.Context, id int64) error {
	return c.patch(ctx, fmt.Sprintf("/users/enable/%d", id))
}

// DisableUser deactivates a login account without deleting it.
func (c *Client) DisableUser(ctx context.Context, id int64) error {
	return c.patch(ctx, fmt.Sprintf("/users/disable/%d", id))
}

// LinkCustomer creates a customer record attached to a login account so
// the account sees that customer's bills and meter. The backend fills the
// name and email from the account; the caller supplies the rest.
func (c *Client) LinkCustomer(ctx context.Context, userID int64, customer Customer) (Customer, error) {
	var created Customer
	err := c.post(ctx, fmt.Sprintf("/users/%d/link-customer", userID), nil, customer, &created)
	return created, err
}

// UserCustomer returns the customer record linked to a login account.
func (c *Client) UserCustomer(ctx context.Context, userID int64) (Customer, error) {
	var customer Customer
	err := c.get(ctx, fmt.Sprintf("/users/%d/customer", userID), nil, &customer)
	return customer, err
}

// LocationsByType lists location nodes of the given level, e.g. PROVINCE.
func (c *Client) LocationsByType(ctx context.Context, locType string) ([]Location, error) {
	var locations []Location
	err := c.get(ctx, "/locations/type/"+url.PathEscape(locType), nil, &locations)
	return locations, err
}

// LocationChildren lists the child nodes of a location.
func (c *Client) LocationChildren(ctx context.Context, parentID int64) ([]Location, error) {
	var locations []Location
	err := c.get(ctx, fmt.Sprintf("/locations/children/%d", parentID), nil, &locations)
	return locations, err
}
