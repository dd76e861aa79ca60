// Package supabase is a minimal client for the Supabase REST and auth
// APIs. It is the storage collaborator for the engine: raw craving
// events and intervention outcomes live in Supabase tables and are
// consumed/produced through plain CRUD calls.
package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to one Supabase project
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// User is the identity returned by token verification
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewClient creates a client for the given project URL and service key
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs one REST request against /rest/v1/<table> with PostgREST
// query parameters, returning the raw response body.
func (c *Client) do(method, table string, params map[string]string, payload interface{}, prefer string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("%s/rest/v1/%s", c.URL, table), body)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for key, value := range params {
		q.Add(key, value)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.ServiceKey))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Query selects rows from a table using PostgREST filter parameters
// (e.g. "user_id": "eq.<id>", "order": "timestamp.desc").
func (c *Client) Query(table string, params map[string]string) ([]byte, error) {
	return c.do(http.MethodGet, table, params, nil, "")
}

// Insert inserts one record (or a batch) and returns the created rows
func (c *Client) Insert(table string, data interface{}) ([]byte, error) {
	return c.do(http.MethodPost, table, nil, data, "return=representation")
}

// Update patches the row with the given id and returns it
func (c *Client) Update(table, id string, data interface{}) ([]byte, error) {
	params := map[string]string{"id": "eq." + id}
	return c.do(http.MethodPatch, table, params, data, "return=representation")
}

// Delete removes the row with the given id
func (c *Client) Delete(table, id string) error {
	params := map[string]string{"id": "eq." + id}
	_, err := c.do(http.MethodDelete, table, params, nil, "")
	return err
}

// VerifyToken resolves a user JWT against the Supabase auth API
func (c *Client) VerifyToken(token string) (*User, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/auth/v1/user", c.URL), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}
