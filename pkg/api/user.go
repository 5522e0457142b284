// Package api defines the wire types exchanged with the survey admin and
// analytics agent backends. The schemas are owned by the backends; this
// package only mirrors them for encoding and decoding, it performs no
// transformation beyond that.
package api

// User is the backend's user record, as returned by /users/ and /users/me.
type User struct {
	ID          int    `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	PhoneNumber string `json:"phone_number,omitempty"`
	SchoolID    *int   `json:"school_id,omitempty"`
}

// IsAdmin reports whether the user lands on the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// UserCreate is the payload for POST /users/create.
type UserCreate struct {
	Username    string `json:"username" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Role        string `json:"role" validate:"required"`
	IsActive    bool   `json:"is_active"`
	PhoneNumber string `json:"phone_number,omitempty"`
	SchoolID    *int   `json:"school_id,omitempty"`
}

// UserUpdate is the payload for PUT /users/{id}. Password is optional: an
// empty password means "leave unchanged" and the key must be stripped from
// the encoded payload before sending, to avoid blanking the credential
// server-side.
type UserUpdate struct {
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	SchoolID    *int   `json:"school_id,omitempty"`
}

// School is a school record from /users/schools/.
type School struct {
	ID   int    `json:"id"`
	Name string `json:"school_name"`
}

// UserOption is the reduced user shape served by /users/users-for-dropdown/.
type UserOption struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is the token payload from POST /auth/login and
// POST /auth/refresh.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
