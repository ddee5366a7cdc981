package identitytoolkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcare/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolkit imita los endpoints accounts:* con un mapa email -> password.
func fakeToolkit(t *testing.T) *httptest.Server {
	t.Helper()
	users := map[string]string{"owner@x.co": "secret1"}

	fail := func(w http.ResponseWriter, msg string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": msg},
		})
	}
	ok := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "k" {
			fail(w, "API_KEY_INVALID")
			return
		}
		var in credentialsRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if _, exists := users[in.Email]; exists {
			fail(w, "EMAIL_EXISTS")
			return
		}
		if len(in.Password) < 6 {
			fail(w, "WEAK_PASSWORD : Password should be at least 6 characters")
			return
		}
		users[in.Email] = in.Password
		ok(w, map[string]any{"localId": "uid-" + in.Email, "email": in.Email, "idToken": "tok-" + in.Email, "expiresIn": "3600"})
	})
	mux.HandleFunc("/v1/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		var in credentialsRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if pw, exists := users[in.Email]; !exists || pw != in.Password {
			fail(w, "INVALID_LOGIN_CREDENTIALS")
			return
		}
		ok(w, map[string]any{"localId": "uid-" + in.Email, "email": in.Email, "idToken": "tok-" + in.Email, "refreshToken": "r", "expiresIn": "3600"})
	})
	mux.HandleFunc("/v1/accounts:lookup", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		switch in["idToken"] {
		case "tok-owner@x.co":
			ok(w, map[string]any{"users": []any{map[string]any{"localId": "uid-owner@x.co", "email": "owner@x.co"}}})
		case "tok-disabled":
			ok(w, map[string]any{"users": []any{map[string]any{"localId": "uid-d", "disabled": true}}})
		default:
			fail(w, "INVALID_ID_TOKEN")
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := fakeToolkit(t)
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k"})
	require.NoError(t, err)
	return c
}

func TestClient_SignUp(t *testing.T) {
	c := newTestClient(t)

	sess, err := c.SignUp(context.Background(), "new@x.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-new@x.co", sess.UserID)
	assert.Equal(t, "tok-new@x.co", sess.IDToken)
	assert.Equal(t, int64(3600), sess.ExpiresIn)
}

func TestClient_ErrorCodes(t *testing.T) {
	c := newTestClient(t)

	cases := []struct {
		name string
		call func() error
		code string
	}{
		{"email exists", func() error { _, err := c.SignUp(context.Background(), "owner@x.co", "secret1"); return err }, auth.CodeEmailExists},
		{"weak password", func() error { _, err := c.SignUp(context.Background(), "b@x.co", "123"); return err }, auth.CodeWeakPassword},
		{"bad credentials", func() error { _, err := c.SignIn(context.Background(), "owner@x.co", "nope"); return err }, auth.CodeInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var aerr *auth.Error
			require.True(t, errors.As(tc.call(), &aerr))
			assert.Equal(t, tc.code, aerr.Code)
			assert.Equal(t, auth.Message(tc.code), aerr.Message)
		})
	}
}

func TestClient_SignIn(t *testing.T) {
	c := newTestClient(t)

	sess, err := c.SignIn(context.Background(), "owner@x.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "uid-owner@x.co", sess.UserID)
	assert.Equal(t, "r", sess.RefreshToken)
}

func TestClient_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = c.SignIn(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifier(t *testing.T) {
	v := NewVerifier(newTestClient(t))

	claims, err := v.Verify(context.Background(), " tok-owner@x.co ")
	require.NoError(t, err)
	assert.Equal(t, "uid-owner@x.co", claims.UserID)
	assert.Equal(t, "owner@x.co", claims.Email)

	_, err = v.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(context.Background(), "garbage")
	var aerr *auth.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, auth.CodeInvalidToken, aerr.Code)

	_, err = v.Verify(context.Background(), "tok-disabled")
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, auth.CodeUserDisabled, aerr.Code)
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "EMAIL_EXISTS", errorCode(`{"error":{"message":"EMAIL_EXISTS"}}`))
	assert.Equal(t, "WEAK_PASSWORD", errorCode(`{"error":{"message":"WEAK_PASSWORD : short"}}`))
	assert.Equal(t, "", errorCode("not json"))
}
