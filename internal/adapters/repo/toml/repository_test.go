package toml

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*Repository, string) {
	t.Helper()

	profilesPath := filepath.Join(t.TempDir(), "profiles.toml")
	config := viper.New()
	config.Set(ProfilesPathKey, profilesPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo, profilesPath
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	windows := domain.Profile{
		Name: "default",
		URL:  "https://portal.example.com/xpertdoc",
		Auth: domain.ProfileAuth{Mode: domain.CredentialModeAmbient},
	}
	forms := domain.Profile{
		Name: "staging",
		URL:  "https://staging.example.com/xpertdoc",
		Auth: domain.ProfileAuth{
			Mode:      domain.CredentialModeExplicit,
			Username:  "alice",
			SecretRef: "xpertdoc/staging/password",
		},
	}

	require.NoError(t, repo.Save(context.Background(), windows))
	require.NoError(t, repo.Save(context.Background(), forms))

	got, err := repo.GetByName(context.Background(), forms.Name)
	require.NoError(t, err)
	assert.Equal(t, forms, got)

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Profile{windows, forms}, profiles)
}

func TestRepositorySaveReplacesExistingProfile(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	profile := domain.Profile{Name: "default", URL: "https://old", Auth: domain.ProfileAuth{Mode: domain.CredentialModeAmbient}}
	require.NoError(t, repo.Save(context.Background(), profile))

	profile.URL = "https://new"
	require.NoError(t, repo.Save(context.Background(), profile))

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "https://new", profiles[0].URL)
}

func TestRepositoryGetByNameMissingReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	_, err := repo.GetByName(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	profile := domain.Profile{Name: "default", URL: "https://portal", Auth: domain.ProfileAuth{Mode: domain.CredentialModeAmbient}}
	require.NoError(t, repo.Save(context.Background(), profile))

	require.NoError(t, repo.Delete(context.Background(), "default"))
	_, err := repo.GetByName(context.Background(), "default")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	err = repo.Delete(context.Background(), "default")
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRepositoryWritesPrivateFile(t *testing.T) {
	t.Parallel()

	repo, profilesPath := newTestRepository(t)
	require.NoError(t, repo.Save(context.Background(), domain.Profile{
		Name: "default",
		URL:  "https://portal",
		Auth: domain.ProfileAuth{Mode: domain.CredentialModeAmbient},
	}))

	info, err := os.Stat(profilesPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(profilesFileMode), info.Mode().Perm())

	data, err := os.ReadFile(profilesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "windows")
}

func TestRepositoryReadsLegacyFileWithoutAuthAsWindows(t *testing.T) {
	t.Parallel()

	repo, profilesPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(profilesPath, []byte("[[profiles]]\nname = \"default\"\nurl = \"https://portal\"\n"), 0o600))

	profile, err := repo.GetByName(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, domain.CredentialModeAmbient, profile.Auth.Mode)
}

func TestRepositoryRejectsNewerSchemaVersion(t *testing.T) {
	t.Parallel()

	repo, profilesPath := newTestRepository(t)
	require.NoError(t, os.WriteFile(profilesPath, []byte("version = 99\n"), 0o600))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported profiles schema version 99")
}

func TestRepositoryConcurrentSavesKeepAllProfiles(t *testing.T) {
	t.Parallel()

	repo, profilesPath := newTestRepository(t)
	other, err := NewRepository(func() *viper.Viper {
		cfg := viper.New()
		cfg.Set(ProfilesPathKey, profilesPath)
		return cfg
	}())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			target := repo
			if i%2 == 1 {
				target = other
			}
			_ = target.Save(context.Background(), domain.Profile{
				Name: domain.ProfileName("p" + strconv.Itoa(i)),
				URL:  "https://portal",
				Auth: domain.ProfileAuth{Mode: domain.CredentialModeAmbient},
			})
		}(i)
	}
	wg.Wait()

	profiles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, profiles, 10)
}
