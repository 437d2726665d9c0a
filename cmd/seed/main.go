// seed creates the demo admin and client accounts in the configured store.
// Existing accounts are left alone, so it is safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"

	"github.com/copebusiness/portal/internal/core/domain"
	"github.com/copebusiness/portal/internal/core/ports"
	"github.com/copebusiness/portal/internal/infrastructure/db"
	"github.com/copebusiness/portal/internal/pkg/config"
	"github.com/copebusiness/portal/pkg/logger"
)

type account struct {
	Name    string
	Email   string
	Role    domain.Role
	Company string
	Balance domain.Money
}

var demoAccounts = []account{
	{Name: "Admin User", Email: "admin@copebusiness.com", Role: domain.RoleAdmin},
	{Name: "John Davidson", Email: "john@davidsoncorp.com", Role: domain.RoleClient, Company: "Davidson Corp", Balance: domain.MoneyFromFloat(1250.50)},
	{Name: "Sarah Miller", Email: "sarah@millerindustries.com", Role: domain.RoleClient, Company: "Miller Industries", Balance: domain.MoneyFromFloat(850.00)},
	{Name: "Mike Johnson", Email: "mike@johnsonllc.com", Role: domain.RoleClient, Company: "Johnson LLC", Balance: domain.MoneyFromFloat(2100.75)},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var password string
	var driver string

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVar(&password, "password", "password123", "password for every demo account")
	flagSet.StringVar(&driver, "driver", "", "override STORE_DRIVER (mongo, postgres)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if driver != "" {
		cfg.StoreDriver = driver
	}
	if cfg.StoreDriver == config.DriverMemory {
		return errors.New("seeding the memory store has no effect; pick mongo or postgres")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer backend.Close(ctx)

	created, err := seed(ctx, backend.Repos, demoAccounts, password, log)
	if err != nil {
		return err
	}
	log.Info().Int("created", created).Int("total", len(demoAccounts)).Msg("seed complete")
	return nil
}

// seed inserts every account whose email is not registered yet and returns
// how many were created.
func seed(ctx context.Context, repos ports.Repositories, accounts []account, password string, log zerolog.Logger) (int, error) {
	if len(password) < domain.MinPasswordLength {
		return 0, domain.ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	created := 0
	for _, a := range accounts {
		now := time.Now().UTC()
		email := strings.ToLower(a.Email)
		cred := &domain.Credential{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: string(hash),
			Name:         a.Name,
			Confirmed:    true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		profile := &domain.Profile{
			ID:            cred.ID,
			Name:          a.Name,
			Email:         email,
			Role:          a.Role,
			Company:       a.Company,
			WalletBalance: a.Balance,
			CreatedAt:     now,
		}

		err := repos.Tx.Execute(ctx, func(ctx context.Context) error {
			if err := repos.Credentials.Create(ctx, cred); err != nil {
				return err
			}
			return repos.Profiles.Create(ctx, profile)
		})
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			log.Info().Str("email", email).Msg("account exists, skipped")
			continue
		case err != nil:
			return created, fmt.Errorf("seed %s: %w", email, err)
		}
		log.Info().Str("email", email).Str("role", string(a.Role)).Msg("account created")
		created++
	}
	return created, nil
}
