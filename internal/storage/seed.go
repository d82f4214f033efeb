package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexedwards/argon2id"
	"gopkg.in/yaml.v3"

	"todocore/internal/models"
)

type seedFile struct {
	Users []struct {
		Email    string      `yaml:"email"`
		Password string      `yaml:"password"`
		FullName string      `yaml:"full_name"`
		Role     models.Role `yaml:"role"`
	} `yaml:"users"`
}

// SeedUsers provisions accounts from a yaml file, skipping entries
// that already exist. Passwords in the file are plaintext and hashed
// on the way in; the file is meant for bootstrap, not production user
// management.
func SeedUsers(ctx context.Context, store UserStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, u := range sf.Users {
		if u.Email == "" || u.Password == "" {
			continue
		}

		if _, err := store.GetByEmail(ctx, u.Email); err == nil {
			continue
		} else if !errors.Is(err, ErrUserNotFound) {
			return err
		}

		hash, err := argon2id.CreateHash(u.Password, argon2id.DefaultParams)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Email, err)
		}

		role := u.Role
		if role == "" {
			role = models.RoleUser
		}

		err = store.Create(ctx, &models.User{
			Email:        u.Email,
			PasswordHash: hash,
			FullName:     u.FullName,
			Role:         role,
		})
		if err != nil && !errors.Is(err, ErrUserAlreadyExists) {
			return err
		}
	}
	return nil
}
