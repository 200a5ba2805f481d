package domain

import (
	"strings"

	"github.com/google/uuid"
)

type TemplateRef struct {
	Library string
	Group   string
	Name    string
}

func (r TemplateRef) String() string {
	return strings.Join([]string{r.Library, r.Group, r.Name}, "/")
}

type TemplateLibrary struct {
	ID   uuid.UUID `odata:"TemplateLibraryId"`
	Name string    `odata:"Name"`
}

type TemplateGroup struct {
	ID        uuid.UUID `odata:"TemplateGroupId"`
	LibraryID uuid.UUID `odata:"TemplateLibraryId"`
	Name      string    `odata:"Name"`
}

type Template struct {
	ID      uuid.UUID `odata:"TemplateId"`
	GroupID uuid.UUID `odata:"TemplateGroupId"`
	Name    string    `odata:"Name"`
}

// ExecutionInfo is what the portal reports once a template execution completes.
type ExecutionInfo struct {
	Success       bool
	ExecutionID   uuid.UUID
	FailureReason string
}

type ExecutionResultRecord struct {
	ID          uuid.UUID `odata:"TemplateExecutionResultId"`
	ExecutionID uuid.UUID `odata:"TemplateExecutionId"`
}

type ExecutionStatus string

const (
	ExecutionSucceeded ExecutionStatus = "succeeded"
	ExecutionFailed    ExecutionStatus = "failed"
)

type TemplateExecutionResult struct {
	Template      TemplateRef
	Status        ExecutionStatus
	ExecutionID   uuid.UUID
	ResultID      uuid.UUID
	Content       []byte
	FailureReason string
}

func (r TemplateExecutionResult) Succeeded() bool {
	return r.Status == ExecutionSucceeded
}
