package backend

import "context"

// Self-service endpoints scoped to the authenticated customer account.
// The backend resolves "my" from the bearer token.

// MyBills returns the calling customer's bills.
func (c *Client) MyBills(ctx context.Context, q ListQuery) (Page[Bill], error) {
	var page Page[Bill]
	err := c.get(ctx, "/bills/my-bills", q.values(), &page)
	return page, err
}

// MyPayments returns the calling customer's payments.
func (c *Client) MyPayments(ctx context.Context, q ListQuery) (Page[Payment], error) {
	var page Page[Payment]
	err := c.get(ctx, "/payments/my-payments", q.values(), &page)
	return page, err
}

// MyMeter returns the meter installed for the calling customer.
func (c *Client) MyMeter(ctx context.Context) (Meter, error) {
	var meter Meter
	err := c.get(ctx, "/meters/my-meter", nil, &meter)
	return meter, err
}

// MyProfile returns the customer record linked to the calling account.
func (c *Client) MyProfile(ctx context.Context) (Customer, error) {
	var customer Customer
	err := c.get(ctx, "/customers/my-profile", nil, &customer)
	return customer, err
}

// UpdateMyProfile updates the customer record linked to the calling
// account.
func (c *Client) UpdateMyProfile(ctx context.Context, customer Customer) (Customer, error) {
	var updated Customer
	err := c.put(ctx, "/customers/my-profile", customer, &updated)
	return updated, err
}
