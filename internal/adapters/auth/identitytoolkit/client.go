package identitytoolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"petcare/internal/platform/httpclient"
	"petcare/internal/platform/metrics"
	"petcare/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("identity toolkit client not configured")
	ErrUpstream      = errors.New("identity toolkit upstream error")
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com"

// Config del cliente de Identity Toolkit (email/contraseña).
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

var _ auth.IdentityProvider = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	hc, err := httpclient.New("identitytoolkit", base, cfg.Timeout, httpclient.WithMetrics(cfg.Metrics))
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, apiKey: strings.TrimSpace(cfg.APIKey)}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.apiKey != ""
}

type credentialsRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type sessionResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (c *Client) SignUp(ctx context.Context, email, password string) (auth.Session, error) {
	return c.credentials(ctx, "accounts:signUp", email, password)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	return c.credentials(ctx, "accounts:signInWithPassword", email, password)
}

func (c *Client) credentials(ctx context.Context, method, email, password string) (auth.Session, error) {
	if !c.IsConfigured() {
		return auth.Session{}, ErrNotConfigured
	}

	var out sessionResponse
	err := c.call(ctx, method, credentialsRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}, &out)
	if err != nil {
		return auth.Session{}, err
	}
	if strings.TrimSpace(out.LocalID) == "" {
		return auth.Session{}, fmt.Errorf("%w: response missing localId", ErrUpstream)
	}

	expires, _ := strconv.ParseInt(out.ExpiresIn, 10, 64)
	return auth.Session{
		UserID:       out.LocalID,
		Email:        out.Email,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expires,
	}, nil
}

type lookupResponse struct {
	Users []struct {
		LocalID  string `json:"localId"`
		Email    string `json:"email"`
		Disabled bool   `json:"disabled"`
	} `json:"users"`
}

// Lookup resuelve un id token al usuario dueño.
func (c *Client) Lookup(ctx context.Context, idToken string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}

	var out lookupResponse
	if err := c.call(ctx, "accounts:lookup", map[string]string{"idToken": idToken}, &out); err != nil {
		return auth.Claims{}, err
	}
	if len(out.Users) == 0 {
		return auth.Claims{}, auth.NewError(auth.CodeInvalidToken)
	}
	u := out.Users[0]
	if u.Disabled {
		return auth.Claims{}, auth.NewError(auth.CodeUserDisabled)
	}
	return auth.Claims{
		UserID: strings.TrimSpace(u.LocalID),
		Email:  strings.TrimSpace(u.Email),
	}, nil
}

func (c *Client) call(ctx context.Context, method string, in, out any) error {
	err := c.http.PostJSON(ctx, "/v1/"+method, url.Values{"key": {c.apiKey}}, in, out)
	if err == nil {
		return nil
	}

	var herr *httpclient.HTTPError
	if errors.As(err, &herr) {
		if code := errorCode(herr.Body); code != "" {
			return auth.NewError(code)
		}
		return fmt.Errorf("%w: status=%d", ErrUpstream, herr.StatusCode)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

// errorCode saca el código de {"error":{"message":"WEAK_PASSWORD : ..."}}.
func errorCode(body string) string {
	var env struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return ""
	}
	msg := strings.TrimSpace(env.Error.Message)
	if i := strings.IndexAny(msg, " :"); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
