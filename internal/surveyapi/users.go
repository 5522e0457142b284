package surveyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/sjson"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/pkg/api"
)

// UsersAPI wraps the user management endpoints of the primary backend.
type UsersAPI struct {
	client httpclient.ClientInterface
}

// NewUsersAPI creates a users facade over the given client.
func NewUsersAPI(client httpclient.ClientInterface) *UsersAPI {
	return &UsersAPI{client: client}
}

// List returns all user records.
func (u *UsersAPI) List(ctx context.Context) ([]api.User, error) {
	body, err := u.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "users/",
	})
	if err != nil {
		return nil, err
	}

	var users []api.User
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user list: %w", err)
	}
	return users, nil
}

// Create registers a new user.
func (u *UsersAPI) Create(ctx context.Context, data api.UserCreate) (*api.User, error) {
	if err := validate.Struct(data); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	body, err := u.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "users/create",
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var created api.User
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created user: %w", err)
	}
	return &created, nil
}

// Update modifies an existing user. When no new password was supplied the
// password key is stripped from the payload entirely, so the backend
// leaves the stored credential untouched instead of blanking it.
func (u *UsersAPI) Update(ctx context.Context, id int, data api.UserUpdate) (*api.User, error) {
	if err := validate.Struct(data); err != nil {
		return nil, fmt.Errorf("invalid user update: %w", err)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user update: %w", err)
	}
	if data.Password == "" {
		payload, err = sjson.DeleteBytes(payload, "password")
		if err != nil {
			return nil, fmt.Errorf("failed to encode user update: %w", err)
		}
	}

	body, err := u.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("users/%d", id),
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	var updated api.User
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated user: %w", err)
	}
	return &updated, nil
}

// Schools lists the school units users and processes are scoped to.
func (u *UsersAPI) Schools(ctx context.Context) ([]api.School, error) {
	body, err := u.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "users/schools/",
	})
	if err != nil {
		return nil, err
	}

	var schools []api.School
	if err := json.Unmarshal(body, &schools); err != nil {
		return nil, fmt.Errorf("failed to parse school list: %w", err)
	}
	return schools, nil
}

// Dropdown returns the reduced user list used to populate selection lists.
func (u *UsersAPI) Dropdown(ctx context.Context) ([]api.UserOption, error) {
	body, err := u.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodGet,
		Path:   "users/users-for-dropdown/",
	})
	if err != nil {
		return nil, err
	}

	var options []api.UserOption
	if err := json.Unmarshal(body, &options); err != nil {
		return nil, fmt.Errorf("failed to parse user options: %w", err)
	}
	return options, nil
}
