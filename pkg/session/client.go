package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/neximprove/broker-onboarding/internal/core/domain"
	"github.com/neximprove/broker-onboarding/internal/core/ports"
)

// fallbackMessage is shown when the server response carries no usable error.
const fallbackMessage = "Something went wrong. Please try again."

// ErrSessionExpired signals that the server rejected the held token; the
// manager has already dropped to the anonymous state when this is returned.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError is a non-2xx response translated to its most specific message:
// the first validation error when present, else the error field, else a
// fixed fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

// Client calls the onboarding API, attaching the managed session token to
// every authenticated request.
type Client struct {
	baseURL string
	http    *http.Client
	manager *Manager
}

// NewClient builds a Client around the given session manager.
func NewClient(baseURL string, manager *Manager) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		manager: manager,
	}
}

// Manager exposes the underlying session manager for state checks and guards.
func (c *Client) Manager() *Manager {
	return c.manager
}

// Register creates a broker account. It does not establish a session.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	var resp struct {
		User domain.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	}, &resp, false)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and transitions the manager to authenticated.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var resp struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp, false)
	if err != nil {
		return nil, err
	}
	if err := c.manager.Establish(resp.Token, resp.User); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout drops the session.
func (c *Client) Logout() error {
	return c.manager.Clear()
}

// CreateCustomer onboards a customer under the logged-in broker.
func (c *Client) CreateCustomer(ctx context.Context, fullName, email, gstin, entityType string) (*domain.Customer, error) {
	var resp struct {
		Customer domain.Customer `json:"customer"`
	}
	err := c.do(ctx, http.MethodPost, "/customers", map[string]string{
		"fullName":   fullName,
		"email":      email,
		"gstin":      gstin,
		"entityType": entityType,
	}, &resp, true)
	if err != nil {
		return nil, err
	}
	return &resp.Customer, nil
}

// BrokerStats fetches the logged-in broker's dashboard aggregate.
func (c *Client) BrokerStats(ctx context.Context) (*ports.BrokerStats, []domain.Customer, error) {
	var resp struct {
		Stats           ports.BrokerStats `json:"stats"`
		RecentCustomers []domain.Customer `json:"recentCustomers"`
	}
	if err := c.do(ctx, http.MethodGet, "/customers/stats", nil, &resp, true); err != nil {
		return nil, nil, err
	}
	return &resp.Stats, resp.RecentCustomers, nil
}

// AdminOverview fetches the system-wide snapshot.
func (c *Client) AdminOverview(ctx context.Context) (*ports.Overview, error) {
	var resp ports.Overview
	if err := c.do(ctx, http.MethodGet, "/admin/overview", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminStats fetches broker/customer counts.
func (c *Client) AdminStats(ctx context.Context) (*ports.AdminStats, error) {
	var resp ports.AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBrokers fetches every broker with its customer count.
func (c *Client) ListBrokers(ctx context.Context) ([]ports.BrokerSummary, error) {
	var resp struct {
		Brokers []ports.BrokerSummary `json:"brokers"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/brokers", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Brokers, nil
}

// ListCustomers fetches every customer with the owning broker embedded.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var resp struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/customers", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Customers, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.manager.Token()
		if token == "" {
			return ErrSessionExpired
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && authed {
		// Token invalid or expired: drop to anonymous.
		_ = c.manager.Clear()
		return ErrSessionExpired
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// errorMessage picks the most specific message out of an error body.
func errorMessage(data []byte) string {
	var body struct {
		Error  string `json:"error"`
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if len(body.Errors) > 0 && body.Errors[0].Msg != "" {
			return body.Errors[0].Msg
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return fallbackMessage
}
