package application

import "github.com/bnema/xpertdoc-portal-cli/internal/domain"

type RunCommand struct {
	Template       domain.TemplateRef
	Payload        string
	File           domain.ContentFileRef
	CheckInContent []byte
}

type RunReport struct {
	Session         domain.Session
	Execution       domain.TemplateExecutionResult
	File            domain.ContentFile
	OriginalContent []byte
	CheckedInBytes  int
}

type SetProfileCommand struct {
	Name     domain.ProfileName
	URL      string
	Mode     domain.CredentialMode
	Username string
	// SecretKey and Password are only used with forms credentials.
	SecretKey string
	Password  string
}
