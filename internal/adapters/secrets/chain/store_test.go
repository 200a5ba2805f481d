package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	portmocks "github.com/bnema/xpertdoc-portal-cli/internal/ports/mocks"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profiles/default/password").Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), "profiles/default/password")
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, "profiles/default/password").Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), "profiles/default/password")
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetReturnsCombinedErrorWhenBothBackendsFail(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", errors.New("pass failed")).Once()
	fallback.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), "profiles/default/password")
	require.Error(t, err)
	assert.ErrorContains(t, err, "primary backend")
	assert.ErrorContains(t, err, "fallback backend")
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "profiles/default/password", "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, "profiles/default/password", "secret").Return(nil).Once()

	err := store.Put(context.Background(), "profiles/default/password", "secret")
	require.NoError(t, err)
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Put(mock.Anything, "profiles/default/password", "secret").Return(nil).Once()

	err := store.Put(context.Background(), "profiles/default/password", "secret")
	require.NoError(t, err)
}

func TestStoreDeleteFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "profiles/default/password").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, "profiles/default/password").Return(nil).Once()

	err := store.Delete(context.Background(), "profiles/default/password")
	require.NoError(t, err)
}

func TestStoreDeleteDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Delete(mock.Anything, "profiles/default/password").Return(nil).Once()

	err := store.Delete(context.Background(), "profiles/default/password")
	require.NoError(t, err)
}

func TestStoreGetDoesNotFallbackOnCanceledContextError(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), "profiles/default/password")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStoreGetKeepsSecretNotFoundWhenBothBackendsMiss(t *testing.T) {
	t.Parallel()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback)

	primary.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", domain.ErrSecretNotFound).Once()
	fallback.EXPECT().Get(mock.Anything, "profiles/default/password").Return("", domain.ErrSecretNotFound).Once()

	_, err := store.Get(context.Background(), "profiles/default/password")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreLogsFallback(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store := NewStore(primary, fallback, WithLogger(logger))

	primary.EXPECT().Put(mock.Anything, "profiles/default/password", "secret").Return(errors.New("pass unavailable")).Once()
	fallback.EXPECT().Put(mock.Anything, "profiles/default/password", "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), "profiles/default/password", "secret"))
	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "put", entry.Data["op"])
	assert.Equal(t, "profiles/default/password", entry.Data["key"])
}

func TestNewStoreCheckedRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStoreChecked(nil, portmocks.NewMockSecretStore(t))
	require.ErrorIs(t, err, errNilPrimaryStore)

	_, err = NewStoreChecked(portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilFallbackStore)
}
