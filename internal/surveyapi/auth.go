package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/internal/common/session"
	"github.com/miradorhq/mirador/pkg/api"
)

// AuthAPI handles authentication against the primary backend. It is the
// only facade that writes to the session store: a successful login stores
// the returned bearer token, logout clears it.
type AuthAPI struct {
	client httpclient.ClientInterface
	store  session.Store
}

// NewAuthAPI creates an auth facade over the given client and store.
func NewAuthAPI(client httpclient.ClientInterface, store session.Store) *AuthAPI {
	return &AuthAPI{client: client, store: store}
}

// Login authenticates with username and password. The credentials are sent
// form-url-encoded, unlike the rest of the API which speaks JSON. On
// success the returned token is stored in the session store.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method:      http.MethodPost,
		Path:        "auth/login",
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",

		// a credential rejection must keep any existing session intact
		SkipAuthExpiry: true,
	})
	if err != nil {
		return nil, err
	}

	var resp api.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response contained no access token")
	}

	if err := a.store.SetToken(resp.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store session token: %w", err)
	}
	return &resp, nil
}

// Refresh exchanges the current token for a fresh one and stores it.
func (a *AuthAPI) Refresh(ctx context.Context) (*api.LoginResponse, error) {
	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "auth/refresh",
	})
	if err != nil {
		return nil, err
	}

	var resp api.LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if resp.AccessToken != "" {
		if err := a.store.SetToken(resp.AccessToken); err != nil {
			return nil, fmt.Errorf("failed to store session token: %w", err)
		}
	}
	return &resp, nil
}

// CurrentUser returns the caller's own user record. The role field drives
// the admin vs. standard landing surface.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*api.User, error) {
	body, err := a.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "users/me",
	})
	if err != nil {
		return nil, err
	}

	var user api.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user record: %w", err)
	}
	return &user, nil
}

// Logout discards the local session. The backend keeps no session state,
// so this is purely a client-side operation.
func (a *AuthAPI) Logout() error {
	return a.store.Clear()
}
