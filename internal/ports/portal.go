package ports

import (
	"context"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/google/uuid"
)

// Connector binds a session to a portal client. It performs no network I/O.
type Connector interface {
	Connect(session domain.Session) (Portal, error)
}

type Portal interface {
	// Query returns the records of entitySet matching filter, in server order.
	Query(ctx context.Context, entitySet string, filter domain.Filter) ([]domain.Record, error)
	// Execute runs a template and blocks until the portal reports completion.
	Execute(ctx context.Context, templateID uuid.UUID, payload string, metadata1, metadata2 *string) (domain.ExecutionInfo, error)
	FetchContent(ctx context.Context, ref domain.EntityRef) ([]byte, error)
	Mutate(ctx context.Context, ref domain.EntityRef, mutation domain.Mutation) error
}
