// Command bootstrap seeds the record files with the default staff users and
// a handful of sample customers. Running it against a populated store is a
// no-op.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/flatbank/flatbank/internal/domain/entity"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/hash"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/logger"
	"github.com/flatbank/flatbank/internal/infrastructure/adapter/repository"
	timeProvider "github.com/flatbank/flatbank/internal/infrastructure/adapter/time"
	"github.com/flatbank/flatbank/internal/infrastructure/config"
)

type seedUser struct {
	username string
	password string
	role     entity.Role
	first    string
	last     string
	age      uint8
	address  string
	email    string
	phone    string
	balance  int64 // paise, customers only
}

var seedUsers = []seedUser{
	{"siddhesh", "siddhesh@123", entity.RoleAdmin, "Siddhesh", "Patil", 35, "Pune", "siddhesh@flatbank.local", "9800000001", 0},
	{"manasi", "manasi@123", entity.RoleManager, "Manasi", "Joshi", 32, "Mumbai", "manasi@flatbank.local", "9800000002", 0},
	{"eknath", "eknath@123", entity.RoleEmployee, "Eknath", "Shinde", 28, "Nashik", "eknath@flatbank.local", "9800000003", 0},
	{"arjun", "arjun@123", entity.RoleCustomer, "Arjun", "Mehta", 30, "Delhi", "arjun@flatbank.local", "9800000101", 500000},
	{"priya", "priya@123", entity.RoleCustomer, "Priya", "Nair", 27, "Kochi", "priya@flatbank.local", "9800000102", 250000},
	{"rahul", "rahul@123", entity.RoleCustomer, "Rahul", "Verma", 41, "Jaipur", "rahul@flatbank.local", "9800000103", 100000},
	{"sneha", "sneha@123", entity.RoleCustomer, "Sneha", "Kulkarni", 24, "Nagpur", "sneha@flatbank.local", "9800000104", 0},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewNoopLogger()
	tp := timeProvider.NewRealTimeProvider()
	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	userRepo, err := repository.NewUserRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	accountRepo, err := repository.NewAccountRepository(cfg.Store.Dir, appLogger)
	if err != nil {
		log.Fatalf("Failed to open account store: %v", err)
	}

	ctx := context.Background()

	existing, err := userRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to read user store: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Store already holds %d users, nothing to do.\n", len(existing))
		os.Exit(0)
	}

	now := tp.Now()
	for _, s := range seedUsers {
		hashed, err := hasher.Hash(s.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", s.username, err)
		}
		id, err := userRepo.NextID(ctx)
		if err != nil {
			log.Fatalf("Failed to allocate id for %s: %v", s.username, err)
		}
		u := &entity.User{
			ID:           id,
			Username:     s.username,
			PasswordHash: hashed,
			Role:         s.role,
			FirstName:    s.first,
			LastName:     s.last,
			Age:          s.age,
			Address:      s.address,
			Email:        s.email,
			Phone:        s.phone,
			Active:       true,
			CreatedAt:    now,
		}
		if err := userRepo.Save(ctx, u); err != nil {
			log.Fatalf("Failed to save user %s: %v", s.username, err)
		}
		if s.role == entity.RoleCustomer {
			acc := &entity.Account{
				AccountID: id,
				UserID:    id,
				Balance:   s.balance,
				Active:    true,
				CreatedAt: now,
			}
			if err := accountRepo.Save(ctx, acc); err != nil {
				log.Fatalf("Failed to save account for %s: %v", s.username, err)
			}
		}
		fmt.Printf("Created %-8s id=%d role=%s\n", s.username, id, s.role)
	}
	fmt.Println("Bootstrap complete.")
}
