package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrAmbiguous              = errors.New("ambiguous match")
	ErrRemoteExecutionFailure = errors.New("remote template execution failed")
	ErrAuthorization          = errors.New("authorization failed")
	ErrConflict               = errors.New("checkout conflict")
	ErrTimeout                = errors.New("remote call timed out")

	ErrProfileNotFound = errors.New("profile not found")
	ErrSecretNotFound  = errors.New("secret not found")
)

type RemoteExecutionError struct {
	Template    TemplateRef
	ExecutionID uuid.UUID
	Reason      string
}

func (e *RemoteExecutionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("execute template %s: %s", e.Template, ErrRemoteExecutionFailure)
	}
	return fmt.Sprintf("execute template %s: %s: %s", e.Template, ErrRemoteExecutionFailure, e.Reason)
}

func (e *RemoteExecutionError) Unwrap() error {
	return ErrRemoteExecutionFailure
}

type CheckInStep string

const (
	CheckInStepUpdateContent CheckInStep = "update content"
	CheckInStepRelease       CheckInStep = "check in"
)

// CheckInError reports which of the two check-in calls failed. When Step is
// CheckInStepRelease the new content is already stored and the file is still
// checked out by the caller.
type CheckInError struct {
	File ContentFile
	Step CheckInStep
	Err  error
}

func (e *CheckInError) Error() string {
	msg := fmt.Sprintf("check in %q: %s: %v", e.File.Name, e.Step, e.Err)
	if e.Step == CheckInStepRelease {
		msg += " (content updated, file remains checked out)"
	}
	return msg
}

func (e *CheckInError) Unwrap() error {
	return e.Err
}
