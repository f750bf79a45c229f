// Package cli implements authctl, a small operator client for the account
// server: register, login, and profile access over HTTP.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// sessionCookieName must match the cookie the server issues on login.
const sessionCookieName = "token"

// Client talks to the account server's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *Client) postCredentials(path, username, password string) (*http.Response, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, err
	}
	return c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(body))
}

func decodeMessage(res *http.Response) string {
	var m messageResponse
	data, _ := io.ReadAll(res.Body)
	if err := json.Unmarshal(data, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return string(data)
}

// Register creates an account and returns the server's message.
func (c *Client) Register(username, password string) (string, error) {
	res, err := c.postCredentials("/api/user/register", username, password)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	msg := decodeMessage(res)
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registration failed (%d): %s", res.StatusCode, msg)
	}
	return msg, nil
}

// Login authenticates and returns the session token from the response
// cookie.
func (c *Client) Login(username, password string) (string, error) {
	res, err := c.postCredentials("/api/user/login", username, password)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed (%d): %s", res.StatusCode, decodeMessage(res))
	}

	for _, cookie := range res.Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("no session cookie in response")
}

func (c *Client) authedRequest(method, path, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return c.http.Do(req)
}

// Profile fetches the caller's account as pretty-printed JSON.
func (c *Client) Profile(token string) (string, error) {
	res, err := c.authedRequest(http.MethodGet, "/api/user/profile", token, nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile fetch failed (%d): %s", res.StatusCode, string(data))
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data), nil
	}
	return buf.String(), nil
}

// Update sends a partial profile edit (raw JSON) and returns the updated
// account as pretty-printed JSON.
func (c *Client) Update(token string, patch []byte) (string, error) {
	res, err := c.authedRequest(http.MethodPost, "/api/user/update", token, bytes.NewReader(patch))
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("update failed (%d): %s", res.StatusCode, string(data))
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data), nil
	}
	return buf.String(), nil
}
