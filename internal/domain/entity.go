package domain

import "github.com/google/uuid"

const (
	EntitySetTemplateLibraries        = "TemplateLibraries"
	EntitySetTemplateGroups           = "TemplateGroups"
	EntitySetTemplates                = "Templates"
	EntitySetTemplateExecutionResults = "TemplateExecutionResults"
	EntitySetContentLibraries         = "ContentLibraries"
	EntitySetContentLibraryFolders    = "ContentLibraryFolders"
	EntitySetContentLibraryFiles      = "ContentLibraryFiles"
)

// Record is a single entity as returned by a portal query, keyed by property name.
type Record map[string]any

type EntityRef struct {
	Set string
	ID  uuid.UUID
}

func (r EntityRef) String() string {
	return r.Set + "(" + r.ID.String() + ")"
}

type MutationKind string

const (
	MutationCheckOut      MutationKind = "CheckOut"
	MutationCheckIn       MutationKind = "CheckIn"
	MutationUpdateContent MutationKind = "UpdateContent"
)

type Mutation struct {
	Kind    MutationKind
	Content []byte
}

func CheckOutMutation() Mutation {
	return Mutation{Kind: MutationCheckOut}
}

func CheckInMutation() Mutation {
	return Mutation{Kind: MutationCheckIn}
}

func UpdateContentMutation(content []byte) Mutation {
	return Mutation{Kind: MutationUpdateContent, Content: content}
}
