package odata

import (
	"context"
	"fmt"
	"net/http"
)

const loginPath = "api/authentication/login"

type loginRequest struct {
	UserName   string `json:"userName"`
	Password   string `json:"password"`
	Persistent bool   `json:"createPersistentCookie"`
}

// ensureLogin performs the forms login once per client, on the first request.
// The portal answers with a session cookie that the client's jar replays.
func (c *Client) ensureLogin(ctx context.Context) error {
	if c.session.Credentials.IsAmbient() {
		return nil
	}

	c.loginMu.Lock()
	defer c.loginMu.Unlock()

	if c.loggedIn {
		return nil
	}

	req := request{
		method: http.MethodPost,
		path:   loginPath,
		body: loginRequest{
			UserName: c.session.Credentials.Username,
			Password: c.session.Credentials.Password,
		},
	}
	if err := c.send(ctx, req, nil); err != nil {
		return fmt.Errorf("forms login as %q: %w", c.session.Credentials.Username, err)
	}

	c.loggedIn = true
	c.log.Debug("forms login succeeded")
	return nil
}
