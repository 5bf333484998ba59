package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// Fixture is the startup data file: users, and items referencing their owner by email.
type Fixture struct {
	Users []UserFixture `yaml:"users"`
	Items []ItemFixture `yaml:"items"`
}

type UserFixture struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type ItemFixture struct {
	OwnerEmail  string `yaml:"owner_email"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Available   *bool  `yaml:"available"`
}

// Load reads a fixture file. A missing file yields an empty fixture.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Fixture{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &f, nil
}

// Apply creates the fixture's users and items through the services.
// Users whose email is already taken are skipped, so applying twice is harmless
// for users; items are only created for users created by this call.
func Apply(ctx context.Context, f *Fixture, users domain.UserService, items domain.ItemService, logger *zerolog.Logger) (int, int, error) {
	owners := make(map[string]int64, len(f.Users))
	for _, u := range f.Users {
		user := &models.User{Name: u.Name, Email: u.Email}
		err := users.CreateUser(ctx, user)
		if errors.Is(err, database.ErrDuplicateEmail) {
			logger.Debug().Str("email", u.Email).Msg("seed user already exists")
			continue
		}
		if err != nil {
			return 0, 0, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		owners[strings.ToLower(user.Email)] = user.ID
	}

	createdItems := 0
	for _, it := range f.Items {
		ownerID, ok := owners[strings.ToLower(strings.TrimSpace(it.OwnerEmail))]
		if !ok {
			logger.Debug().Str("item", it.Name).Str("owner_email", it.OwnerEmail).Msg("seed item skipped, owner not created")
			continue
		}

		available := true
		if it.Available != nil {
			available = *it.Available
		}
		item := &models.Item{OwnerID: ownerID, Name: it.Name, Description: it.Description, Available: available}
		if err := items.CreateItem(ctx, item); err != nil {
			return len(owners), createdItems, fmt.Errorf("seed item %s: %w", it.Name, err)
		}
		createdItems++
	}

	logger.Info().Int("users", len(owners)).Int("items", createdItems).Msg("seed data applied")
	return len(owners), createdItems, nil
}
