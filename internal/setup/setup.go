// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/foodgram-app/backend/internal/argon2id"
	"github.com/foodgram-app/backend/internal/config"
	"github.com/foodgram-app/backend/internal/database"
	"github.com/foodgram-app/backend/internal/env"
	"github.com/foodgram-app/backend/internal/password"
	"github.com/foodgram-app/backend/internal/shortlink"
)

// Database connects to Postgres using the loaded config and applies the
// schema when the database is empty.
func Database(ctx context.Context, conf config.Config) (*database.Database, error) {
	if conf.Database.Host == "" {
		return nil, errors.New("database connection settings are not configured")
	}
	dbString := fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		conf.Database.User,
		conf.Database.Password,
		conf.Database.Host,
		conf.Database.Port,
		conf.Database.Database,
	)

	pool, err := pgxpool.New(ctx, dbString)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	return db, nil
}

// ShortLinks builds the short-link service from config. Requires the
// database for token persistence.
func ShortLinks(conf config.Config, db *database.Database) *shortlink.Service {
	gen := shortlink.NewGenerator(conf.ShortLink.MinLength, conf.ShortLink.MaxLength, nil)
	store := shortlink.PGStore{DB: db}
	return shortlink.NewService(gen, conf.HostOrigin, store, store)
}

// Admin sets up an admin user if one does not exist. Requires env.Database.
func Admin(ctx context.Context, env *env.Env) error {
	adminConf := env.Config.Admin
	if adminConf.Username == "" || adminConf.Email == "" || adminConf.Password == "" {
		env.Logger.Info("admin credentials not configured, skipping admin setup")
		return nil
	}

	// Validate email and password
	if _, err := mail.ParseAddress(adminConf.Email); err != nil {
		return fmt.Errorf("parsing admin email: %w", err)
	}
	if err := password.ValidatePassword(string(adminConf.Password)); err != nil {
		return fmt.Errorf("validating admin password: %w", err)
	}

	// Check admin count
	count, err := env.Database.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		env.Logger.Info("admin already setup, skipping setup")
		return nil
	}

	hashedPassword, err := argon2id.EncodeHash(string(adminConf.Password), argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	// Create admin
	_, err = env.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        adminConf.Email,
		Username:     adminConf.Username,
		FirstName:    "admin",
		LastName:     "admin",
		PasswordHash: hashedPassword,
		Role:         database.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	env.Logger.Info("successfully setup admin!")

	return nil
}
