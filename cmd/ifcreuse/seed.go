package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"ifc-reuse-backend/internal/auth"
	"ifc-reuse-backend/internal/config"
	"ifc-reuse-backend/internal/database"
	"ifc-reuse-backend/internal/database/models"
	"ifc-reuse-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// seedFile is the layout of a users YAML file.
type seedFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <users.yaml>",
	Short: "Create user accounts from a YAML file in the configured database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := loadSeedFile(args[0])
		if err != nil {
			return err
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		db, err := database.Initialize(cfg.DatabaseURL, &database.Options{Driver: cfg.DatabaseDriver})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			if err := database.Close(db); err != nil {
				logrus.WithError(err).Warn("failed to close database")
			}
		}()

		created, err := seedUsers(repository.NewUserRepository(db), users, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Users: %d created, %d total\n", created, len(users))
		return nil
	},
}

func loadSeedFile(path string) ([]seedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return file.Users, nil
}

// seedUsers creates the accounts that do not exist yet. Existing emails are
// left untouched.
func seedUsers(users repository.UserRepositoryInterface, entries []seedUser, out io.Writer) (int, error) {
	created := 0
	for i, entry := range entries {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		if email == "" || entry.Password == "" {
			return created, fmt.Errorf("user %d: email and password are required", i+1)
		}
		role := models.UserRole(strings.ToLower(entry.Role))
		if role == "" {
			role = models.UserRoleUser
		}
		if !role.IsValid() {
			return created, fmt.Errorf("user %s: unknown role %q", email, entry.Role)
		}

		if _, err := users.GetByEmail(email); err == nil {
			fmt.Fprintf(out, "exists %s\n", email)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("failed to look up user %s: %w", email, err)
		}

		hash, err := auth.HashPassword(entry.Password)
		if err != nil {
			return created, fmt.Errorf("failed to hash password for %s: %w", email, err)
		}
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			name = email
		}
		user := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
		if err := users.Create(user); err != nil {
			return created, fmt.Errorf("failed to create user %s: %w", email, err)
		}
		fmt.Fprintf(out, "created %s (%s)\n", email, role)
		created++
	}
	return created, nil
}
