package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type ProfileName string

type Profile struct {
	Name ProfileName
	URL  string
	Auth ProfileAuth
}

type ProfileAuth struct {
	Mode     CredentialMode
	Username string
	// SecretRef points to the secret-store entry holding the forms password.
	SecretRef string
}

func (p Profile) Validate() error {
	if strings.TrimSpace(string(p.Name)) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.URL) == "" {
		return fmt.Errorf("url is required")
	}
	parsed, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url must use http or https")
	}
	if _, err := ParseCredentialMode(string(p.Auth.Mode)); err != nil {
		return err
	}
	if p.Auth.Mode == CredentialModeExplicit {
		if strings.TrimSpace(p.Auth.Username) == "" {
			return fmt.Errorf("username is required for %s auth", p.Auth.Mode)
		}
		if strings.TrimSpace(p.Auth.SecretRef) == "" {
			return fmt.Errorf("secret ref is required for %s auth", p.Auth.Mode)
		}
	}

	return nil
}
