package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/user/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] == "taken_name" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Username already exists"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Registration successful"})
	})

	mux.HandleFunc("/api/user/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "Correct#Horse9Battery" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "tok-123", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]string{"message": "Login successful"})
	})

	mux.HandleFunc("/api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		c, err := r.Cookie(sessionCookieName)
		if err != nil || c.Value != "tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"username": "john_doe"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RegisterAndLogin(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL)

	msg, err := c.Register("john_doe", "Correct#Horse9Battery")
	require.NoError(t, err)
	assert.Equal(t, "Registration successful", msg)

	_, err = c.Register("taken_name", "Correct#Horse9Battery")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	tok, err := c.Login("john_doe", "Correct#Horse9Battery")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)

	_, err = c.Login("john_doe", "wrong")
	assert.Error(t, err)
}

func TestClient_Profile(t *testing.T) {
	srv := newFakeServer(t)
	c := NewClient(srv.URL)

	body, err := c.Profile("tok-123")
	require.NoError(t, err)
	assert.Contains(t, body, "john_doe")

	_, err = c.Profile("bad-token")
	assert.Error(t, err)
}

func TestRun_LoginCommand(t *testing.T) {
	srv := newFakeServer(t)

	var out strings.Builder
	in := strings.NewReader("john_doe\nCorrect#Horse9Battery\n")

	err := Run([]string{"-server", srv.URL, "login"}, in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "tok-123")
}

func TestRun_UnknownCommand(t *testing.T) {
	var out strings.Builder
	err := Run([]string{"bogus"}, strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "usage:")
}

func TestRun_ProfileRequiresToken(t *testing.T) {
	t.Setenv("AUTHCTL_TOKEN", "")
	var out strings.Builder
	err := Run([]string{"profile"}, strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}
