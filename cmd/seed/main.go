package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/smitedu/institute-backend/internal/config"
	"github.com/smitedu/institute-backend/internal/database"
	"github.com/smitedu/institute-backend/internal/logger"
	"github.com/smitedu/institute-backend/internal/model"
	"github.com/smitedu/institute-backend/internal/repository"
)

// Seeds the ADMIN and STUDENT roles and creates the first admin account.
// Safe to run repeatedly: existing roles are left alone and an existing
// username aborts before any write.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	roleRepo := repository.NewRoleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── Seed Roles ────────────────────────────────────────────────────
	adminRole, err := ensureRole(ctx, roleRepo, model.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed ADMIN role")
	}
	if _, err := ensureRole(ctx, roleRepo, model.RoleStudent); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed STUDENT role")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create First Admin Account ===")

	fmt.Print("Enter Username (default admin): ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	exists, err := userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check username")
	}
	if exists {
		fmt.Printf("Error: username '%s' already exists\n", username)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		RoleID:       adminRole.ID,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' created with ID: %d\n", admin.Username, admin.ID)
}

func ensureRole(ctx context.Context, roleRepo *repository.RoleRepository, name string) (*model.Role, error) {
	role, err := roleRepo.GetByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role = &model.Role{Name: name}
	if err := roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	fmt.Printf("Created role %s (ID %d)\n", name, role.ID)
	return role, nil
}
