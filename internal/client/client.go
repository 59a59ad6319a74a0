// Package client is a typed Go client for the task API, shared by the
// CLI and the terminal UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tasktrack/internal/domain"
	"tasktrack/internal/service"
)

type Client struct {
	BaseURL string
	Token   string // set after Login; sent as Authorization: Bearer
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, want int) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != want {
		if res.StatusCode == http.StatusNotFound {
			return domain.ErrNotFound
		}
		var ae apiError
		if json.NewDecoder(res.Body).Decode(&ae) == nil && ae.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, ae.Error, res.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(res.Body).Decode(out)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil, http.StatusCreated)
}

// Login stores the returned token on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &res, http.StatusOK); err != nil {
		return err
	}
	c.Token = res.Token
	return nil
}

func (c *Client) CreateTask(ctx context.Context, owner string, in service.TaskCreate) (*domain.Task, error) {
	var t domain.Task
	err := c.do(ctx, http.MethodPost, "/tasks/"+url.PathEscape(owner), in, &t, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) ListTasks(ctx context.Context, owner string, f domain.TaskFilter) ([]domain.Task, error) {
	q := url.Values{}
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if f.Completed != nil {
		q.Set("completed", strconv.FormatBool(*f.Completed))
	}
	path := "/tasks/" + url.PathEscape(owner)
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks, http.StatusOK); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	var t domain.Task
	path := fmt.Sprintf("/tasks/%s/%d", url.PathEscape(owner), id)
	if err := c.do(ctx, http.MethodGet, path, nil, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, owner string, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	var t domain.Task
	path := fmt.Sprintf("/tasks/%s/%d", url.PathEscape(owner), id)
	if err := c.do(ctx, http.MethodPut, path, patch, &t, http.StatusOK); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, owner string, id int64) error {
	path := fmt.Sprintf("/tasks/%s/%d", url.PathEscape(owner), id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, http.StatusNoContent)
}
