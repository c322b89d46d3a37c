// Package client talks to the recipe API over HTTP, keeping the session
// cookie between calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"recipe-server/entities"
)

// ErrUnauthorized is returned for every 401 answer.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx answer carrying the server's messages.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return strings.Join(e.Messages, "; ")
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second, Jar: jar},
	}, nil
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type newRecipe struct {
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutes_to_complete"`
}

func (c *Client) Signup(ctx context.Context, username, password string) (*entities.UserView, error) {
	var user entities.UserView
	if err := c.do(ctx, http.MethodPost, "/signup", credentials{username, password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*entities.UserView, error) {
	var user entities.UserView
	if err := c.do(ctx, http.MethodPost, "/login", credentials{username, password}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CheckSession(ctx context.Context) (*entities.UserView, error) {
	var user entities.UserView
	if err := c.do(ctx, http.MethodGet, "/check_session", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/logout", nil, nil)
}

func (c *Client) Recipes(ctx context.Context) ([]entities.RecipeView, error) {
	var recipes []entities.RecipeView
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) CreateRecipe(ctx context.Context, title, instructions string, minutes int) (*entities.RecipeView, error) {
	var recipe entities.RecipeView
	body := newRecipe{Title: title, Instructions: instructions, MinutesToComplete: minutes}
	if err := c.do(ctx, http.MethodPost, "/recipes", body, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Errors []string `json:"errors"`
		Error  string   `json:"error"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Messages = payload.Errors
		if payload.Error != "" {
			apiErr.Messages = append(apiErr.Messages, payload.Error)
		}
	}
	return apiErr
}
