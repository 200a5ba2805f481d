package chain

import (
	"context"
	"errors"
	"fmt"
	"io"

	filestore "github.com/bnema/xpertdoc-portal-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/xpertdoc-portal-cli/internal/adapters/secrets/pass"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
	"github.com/sirupsen/logrus"
)

// Store reads and writes through primary, switching to fallback when the
// primary backend fails for any reason other than cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	log      logrus.FieldLogger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

type Option func(*Store)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) *Store {
	store, err := NewStoreChecked(primary, fallback, opts...)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary ports.SecretStore, fallback ports.SecretStore, opts ...Option) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	store := &Store{primary: primary, fallback: fallback, log: discard}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// NewPassFirstWithFileFallback keeps secrets in pass under the xpertdoc
// prefix and falls back to plain files below fileRoot.
func NewPassFirstWithFileFallback(fileRoot string, opts ...Option) (*Store, error) {
	return NewStoreChecked(passstore.NewStore(passstore.DefaultPrefix), filestore.NewStore(fileRoot), opts...)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	return s.attempt("put", key, func(backend ports.SecretStore) error {
		return backend.Put(ctx, key, value)
	})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.attempt("get", key, func(backend ports.SecretStore) error {
		got, err := backend.Get(ctx, key)
		if err == nil {
			value = got
		}
		return err
	})
	if err != nil {
		return "", err
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.attempt("delete", key, func(backend ports.SecretStore) error {
		return backend.Delete(ctx, key)
	})
}

func (s *Store) attempt(op string, key string, call func(ports.SecretStore) error) error {
	err := call(s.primary)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	s.log.WithFields(logrus.Fields{"op": op, "key": key}).WithError(err).Debug("primary secret backend failed, using fallback")

	fallbackErr := call(s.fallback)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend %s failed: %w; fallback backend %s failed: %w", op, err, op, fallbackErr)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
