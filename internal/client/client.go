// Package client is a typed HTTP client for the placement API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
)

// APIError is a non-2xx response. Message is the server's message verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to one placement server on behalf of one bearer token
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for baseURL. token may be empty for login.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/api/v1",
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a copy of c authenticating with token
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer token the client sends
func (c *Client) Token() string {
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var payload struct {
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(raw, &payload) == nil {
		msg = payload.Message
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// Login exchanges credentials for a token
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// ListUsers returns users, optionally restricted to role. The server answers
// 404 when nothing matches.
func (c *Client) ListUsers(ctx context.Context, role models.Role) ([]*models.User, error) {
	path := "/users"
	if role != "" {
		path += "?role=" + url.QueryEscape(string(role))
	}
	var out dto.UsersResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// GetUser returns one user
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// UpdateUser overwrites a user's profile
func (c *Client) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) message(ctx context.Context, method, path string, body interface{}) (string, error) {
	var out dto.SuccessResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// SetVerification verifies or unverifies a user
func (c *Client) SetVerification(ctx context.Context, id string, verified bool) (string, error) {
	return c.message(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/verify", dto.VerifyUserRequest{IsVerified: verified})
}

// SetRole assigns role to a user
func (c *Client) SetRole(ctx context.Context, id string, role models.Role) (string, error) {
	return c.message(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/role", dto.UpdateRoleRequest{Role: string(role)})
}

// AssignCompany places a user at companyID, or clears the placement with models.NotPlaced
func (c *Client) AssignCompany(ctx context.Context, id, companyID string) (string, error) {
	return c.message(ctx, http.MethodPatch, "/users/"+url.PathEscape(id)+"/company", dto.AssignCompanyRequest{CompanyID: companyID})
}

// DeleteUser deletes a user
func (c *Client) DeleteUser(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil)
}

// ListCompanies returns every company
func (c *Client) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	var out []*models.Company
	if err := c.do(ctx, http.MethodGet, "/companies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCompany returns one company
func (c *Client) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodGet, "/companies/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCompany adds a company
func (c *Client) CreateCompany(ctx context.Context, req *dto.CompanyRequest) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodPost, "/companies", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCompany replaces a company's fields
func (c *Client) UpdateCompany(ctx context.Context, id string, req *dto.CompanyRequest) (*models.Company, error) {
	var out models.Company
	if err := c.do(ctx, http.MethodPut, "/companies/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCompany removes a company
func (c *Client) DeleteCompany(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodDelete, "/companies/"+url.PathEscape(id), nil)
}
