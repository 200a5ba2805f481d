package domain

import "strings"

// Session is the immutable handle every portal call runs under. It owns no
// remote state; authentication happens on the first request made with it.
type Session struct {
	BaseURL     string
	Credentials Credentials
}

func NewSession(baseURL string, credentials Credentials) Session {
	return Session{
		BaseURL:     strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Credentials: credentials,
	}
}

func (s Session) String() string {
	return s.Credentials.String() + "@" + s.BaseURL
}
