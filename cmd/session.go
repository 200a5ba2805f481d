package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
)

// session resolves the portal session for a command. An explicit portal.url
// (flag, XDP_PORTAL_URL or config file) wins over the stored profile.
func (a *app) session(ctx context.Context) (domain.Session, error) {
	if url := a.cfg.GetString(keyPortalURL); url != "" {
		mode, err := domain.ParseCredentialMode(a.cfg.GetString(keyPortalAuth))
		if err != nil {
			return domain.Session{}, fmt.Errorf("invalid %s: %w", keyPortalAuth, err)
		}
		if mode == domain.CredentialModeAmbient {
			return domain.NewSession(url, domain.AmbientCredentials()), nil
		}

		username := a.cfg.GetString(keyPortalUsername)
		if username == "" {
			return domain.Session{}, fmt.Errorf("%s is required for %s auth", keyPortalUsername, mode)
		}
		return domain.NewSession(url, domain.ExplicitCredentials(username, a.cfg.GetString(keyPortalPassword))), nil
	}

	name := domain.ProfileName(a.cfg.GetString(keyProfile))
	session, err := a.profiles.OpenSession(ctx, name)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return domain.Session{}, fmt.Errorf("%w: %q (run \"xdp profile set\" or set XDP_PORTAL_URL)", domain.ErrProfileNotFound, name)
	}
	return session, err
}
