package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, token string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, staticToken(token))
}

func TestBearerTokenAttached(t *testing.T) {
	var authz, requestID string
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(Page[Customer]{})
	})

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", authz)
	assert.NotEmpty(t, requestID, "every request carries an X-Request-ID")
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var present bool
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		json.NewEncoder(w).Encode(Page[Customer]{})
	})

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.False(t, present, "no Authorization header without a session token")
}

func TestListQueryParameters(t *testing.T) {
	var got string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Bill]{})
	})

	_, err := c.ListBills(context.Background(), ListQuery{Page: 2, Size: 10, Search: "unpaid"})
	require.NoError(t, err)
	assert.Contains(t, got, "page=2")
	assert.Contains(t, got, "size=10")
	assert.Contains(t, got, "search=unpaid")
}

func TestListQueryOmitsZeroValues(t *testing.T) {
	var got string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		json.NewEncoder(w).Encode(Page[Bill]{})
	})

	_, err := c.ListBills(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPageDecoding(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/customers", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"id": 1, "name": "Ada", "email": "ada@x.com"},
				{"id": 2, "name": "Grace", "email": "grace@x.com"},
			},
			"totalElements": 12,
			"totalPages":    2,
			"number":        0,
			"size":          10,
		})
	})

	page, err := c.ListCustomers(context.Background(), ListQuery{Size: 10})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, int64(12), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "Ada", page.Content[0].Name)
}

func TestUnauthorizedPropagates(t *testing.T) {
	c := newTestClient(t, "tok-expired", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	})

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	require.Error(t, err)

	// A 401 is an ordinary failure here; no session teardown, no retry.
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Token expired", apiErr.Message)
}

func TestCreateBillQueryAndBody(t *testing.T) {
	var gotQuery string
	var gotBody Bill
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bills", r.URL.Path)
		gotQuery = r.URL.RawQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Bill{ID: 7, UnitsConsumed: 120})
	})

	bill, err := c.CreateBill(context.Background(), 42, Bill{UnitsConsumed: 120})
	require.NoError(t, err)
	assert.Equal(t, "customerId=42", gotQuery)
	assert.Equal(t, 120.0, gotBody.UnitsConsumed)
	assert.Equal(t, int64(7), bill.ID)
}

func TestDeleteCustomer(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteCustomer(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/customers/9", gotPath)
}

func TestMeterCount(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/meters/count", r.URL.Path)
		w.Write([]byte("37"))
	})

	count, err := c.MeterCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(37), count)
}

func TestLinkCustomer(t *testing.T) {
	var gotPath string
	var gotBody Customer
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(Customer{ID: 21, Name: "Ada Lovelace"})
	})

	created, err := c.LinkCustomer(context.Background(), 3, Customer{Phone: "Not provided", Address: "Not provided"})
	require.NoError(t, err)
	assert.Equal(t, "/users/3/link-customer", gotPath)
	assert.Equal(t, "Not provided", gotBody.Phone)
	assert.Equal(t, int64(21), created.ID)
}

func TestPayBill(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.PayBill(context.Background(), 14))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/bills/pay/14", gotPath)
}

func TestEnableDisableUser(t *testing.T) {
	var calls []string
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.DisableUser(context.Background(), 4))
	require.NoError(t, c.EnableUser(context.Background(), 4))
	assert.Equal(t, []string{"PATCH /users/disable/4", "PATCH /users/enable/4"}, calls)
}

func TestLocationsByType(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/locations/type/PROVINCE", r.URL.Path)
		json.NewEncoder(w).Encode([]Location{{ID: 1, Name: "Kigali", Type: "PROVINCE"}})
	})

	locations, err := c.LocationsByType(context.Background(), "PROVINCE")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Kigali", locations[0].Name)
}

func TestErrorMessageFallback(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListCustomers(context.Background(), ListQuery{})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "request failed", apiErr.Message)
}
