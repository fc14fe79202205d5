// Package auth drives the platform's authentication endpoints and owns
// every mutation of the session store: login, the optional OTP second
// factor, and logout.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vicky-hu-coder/alx-console/session"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Client is a thin REST client for the platform auth endpoints. Calls are
// single-shot: these are user-facing actions, never retried.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the auth API rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the outcome of a login-shaped call. Either OTPRequired is set,
// or Token and User carry the established credentials.
type Result struct {
	OTPRequired bool
	Token       string
	User        session.User
}

// Registration is the request body for POST /auth/register.
type Registration struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	Password   string `json:"password"`
	Role       string `json:"role"`
}

type authReply struct {
	OTPRequired bool   `json:"otpRequired"`
	Token       string `json:"token"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

func (r authReply) result() Result {
	return Result{
		OTPRequired: r.OTPRequired,
		Token:       r.Token,
		User: session.User{
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Phone:     r.Phone,
			Role:      r.Role,
		},
	}
}

// Login calls POST /auth/login with the given credentials.
func (c *Client) Login(ctx context.Context, email, password string) (Result, error) {
	body := map[string]string{"email": email, "password": password}
	var reply authReply
	if err := c.post(ctx, "/auth/login", body, &reply, "login failed"); err != nil {
		return Result{}, err
	}
	return reply.result(), nil
}

// VerifyOTP calls POST /auth/verify-otp for the email of the pending login.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (Result, error) {
	body := map[string]string{"email": email, "code": code}
	var reply authReply
	if err := c.post(ctx, "/auth/verify-otp", body, &reply, "invalid one-time code"); err != nil {
		return Result{}, err
	}
	return reply.result(), nil
}

// Register calls POST /auth/register. The backend typically answers with
// otpRequired so the new account is verified before first use.
func (c *Client) Register(ctx context.Context, reg Registration) (Result, error) {
	var reply authReply
	if err := c.post(ctx, "/auth/register", reg, &reply, "registration failed"); err != nil {
		return Result{}, err
	}
	return reply.result(), nil
}

// ForgotPassword calls POST /auth/forgot-password. A 2xx means the reset
// email was dispatched; the response carries no body of interest.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.post(ctx, "/auth/forgot-password", body, nil, "password reset request failed")
}

// ResetPassword calls POST /auth/reset-password with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.post(ctx, "/auth/reset-password", body, nil, "password reset failed")
}

func (c *Client) post(ctx context.Context, path string, body, out any, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.Body, fallback),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts a human-readable message from an error response
// body. Structured bodies carry "message" or "error"; some endpoints
// answer with a bare string. Anything unusable falls back to the generic
// per-operation message.
func errorMessage(body io.Reader, fallback string) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return fallback
	}

	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil {
		if structured.Message != "" {
			return structured.Message
		}
		if structured.Error != "" {
			return structured.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return fallback
	}
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil && quoted != "" {
		return quoted
	}
	return text
}
