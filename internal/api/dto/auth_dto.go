package dto

import "encoding/json"

// LoginRequest is the credential payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and refresh. RefreshToken is only set
// on login.
type TokenResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// UserInfo describes the authenticated user in profile-style responses.
type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Mobile   string `json:"mobile,omitempty"`
}

// UsersResponse merges the profile with the latest presence broadcast.
type UsersResponse struct {
	Success  bool            `json:"success"`
	User     UserInfo        `json:"user"`
	Statuses json.RawMessage `json:"statuses"`
}
