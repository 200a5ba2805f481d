package domain

import "fmt"

type CredentialMode string

const (
	// CredentialModeAmbient delegates to the identity of the OS user running the process.
	CredentialModeAmbient  CredentialMode = "windows"
	CredentialModeExplicit CredentialMode = "forms"
)

func ParseCredentialMode(raw string) (CredentialMode, error) {
	mode := CredentialMode(raw)
	switch mode {
	case CredentialModeAmbient, CredentialModeExplicit:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported credential mode %q", raw)
	}
}

type Credentials struct {
	Mode     CredentialMode
	Username string
	Password string
}

func AmbientCredentials() Credentials {
	return Credentials{Mode: CredentialModeAmbient}
}

func ExplicitCredentials(username, password string) Credentials {
	return Credentials{Mode: CredentialModeExplicit, Username: username, Password: password}
}

func (c Credentials) IsAmbient() bool {
	return c.Mode != CredentialModeExplicit
}

func (c Credentials) String() string {
	if c.IsAmbient() {
		return string(CredentialModeAmbient)
	}
	return fmt.Sprintf("%s(%s)", CredentialModeExplicit, c.Username)
}
