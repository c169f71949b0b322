package auth

import (
	"encoding/base64"
	"encoding/json"
)

const LoginStateCookie = "staybook_login"

// LoginState remembers the outcome of the last failed login attempt so the
// login form can show an error and refill the username.
type LoginState struct {
	Error    string `json:"error,omitempty"`
	Username string `json:"username,omitempty"`
}

// LastError is the message of the last authentication failure, or "".
func (s LoginState) LastError() string {
	return s.Error
}

// LastUsername is the username submitted with the last attempt.
func (s LoginState) LastUsername() string {
	return s.Username
}

func (s LoginState) Encode() string {
	raw, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeLoginState parses a cookie value. Garbage yields an empty state.
func DecodeLoginState(value string) LoginState {
	var state LoginState
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return LoginState{}
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return LoginState{}
	}
	return state
}
