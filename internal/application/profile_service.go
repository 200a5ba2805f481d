package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/bnema/xpertdoc-portal-cli/internal/ports"
)

var ErrPasswordRequired = errors.New("password is required for forms credentials")

type ProfileService struct {
	repo  ports.ProfileRepository
	store ports.SecretStore
}

func NewProfileService(repo ports.ProfileRepository, store ports.SecretStore) *ProfileService {
	return &ProfileService{repo: repo, store: store}
}

func (s *ProfileService) SetProfile(ctx context.Context, cmd SetProfileCommand) error {
	profile, err := s.repo.GetByName(ctx, cmd.Name)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return fmt.Errorf("get profile by name: %w", err)
		}
		profile = domain.Profile{Name: cmd.Name}
	}
	originalProfile := profile
	previousSecretRef := profile.Auth.SecretRef

	profile.URL = cmd.URL
	profile.Auth = domain.ProfileAuth{Mode: cmd.Mode}
	if cmd.Mode == domain.CredentialModeExplicit {
		profile.Auth.Username = cmd.Username
		profile.Auth.SecretRef = cmd.SecretKey
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile %q: %w", cmd.Name, err)
	}

	newSecretRef := ""
	if cmd.Mode == domain.CredentialModeExplicit {
		switch {
		case cmd.Password != "":
			if err := s.store.Put(ctx, cmd.SecretKey, cmd.Password); err != nil {
				return fmt.Errorf("store profile password: %w", err)
			}
			newSecretRef = cmd.SecretKey
		case cmd.SecretKey != previousSecretRef:
			return ErrPasswordRequired
		}
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		if newSecretRef != "" && newSecretRef != previousSecretRef {
			if rollbackErr := s.store.Delete(ctx, newSecretRef); rollbackErr != nil {
				return fmt.Errorf("save profile and rollback stored password: %w", errors.Join(err, rollbackErr))
			}
		}
		return fmt.Errorf("save profile: %w", err)
	}

	if previousSecretRef == "" || previousSecretRef == profile.Auth.SecretRef {
		return nil
	}

	if err := s.store.Delete(ctx, previousSecretRef); err != nil {
		var rollbackErr error
		if restoreErr := s.repo.Save(ctx, originalProfile); restoreErr != nil {
			rollbackErr = errors.Join(rollbackErr, restoreErr)
		}
		if newSecretRef != "" {
			if deleteErr := s.store.Delete(ctx, newSecretRef); deleteErr != nil {
				rollbackErr = errors.Join(rollbackErr, deleteErr)
			}
		}
		if rollbackErr != nil {
			return fmt.Errorf("delete previous profile password and rollback profile update: %w", errors.Join(err, rollbackErr))
		}
		return fmt.Errorf("delete previous profile password: %w", err)
	}

	return nil
}

func (s *ProfileService) RemoveProfile(ctx context.Context, name domain.ProfileName) error {
	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile by name: %w", err)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if profile.Auth.SecretRef == "" {
		return nil
	}

	if err := s.store.Delete(ctx, profile.Auth.SecretRef); err != nil {
		if restoreErr := s.repo.Save(ctx, profile); restoreErr != nil {
			return fmt.Errorf("delete profile password and restore profile: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete profile password: %w", err)
	}

	return nil
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// OpenSession turns a stored profile into a session, reading the forms
// password from the secret store. No portal request is made.
func (s *ProfileService) OpenSession(ctx context.Context, name domain.ProfileName) (domain.Session, error) {
	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get profile by name: %w", err)
	}

	if profile.Auth.Mode != domain.CredentialModeExplicit {
		return domain.NewSession(profile.URL, domain.AmbientCredentials()), nil
	}

	password, err := s.store.Get(ctx, profile.Auth.SecretRef)
	if err != nil {
		return domain.Session{}, fmt.Errorf("read password for profile %q: %w", name, err)
	}

	return domain.NewSession(profile.URL, domain.ExplicitCredentials(profile.Auth.Username, password)), nil
}
