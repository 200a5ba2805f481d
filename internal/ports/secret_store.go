package ports

import "context"

// SecretStore keeps profile passwords outside the profiles file. Get reports
// a missing key with domain.ErrSecretNotFound; Delete of a missing key is not
// an error.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
