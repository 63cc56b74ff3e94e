// Command createadmin bootstraps a superuser account. Intended for
// operators; the public API can only create regular accounts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipebox/internal/config"
	"github.com/recipebox/internal/models"
	"github.com/recipebox/internal/repository"
	"github.com/recipebox/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	email := flag.String("email", "", "superuser email")
	username := flag.String("username", "", "superuser username")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if *email == "" || *username == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email <email> -username <username> [-name <name>] [-config <path>]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.AuthToken{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	userService := service.NewUserService(repository.NewUserRepository(db))
	user, err := userService.CreateSuperuser(&service.RegisterRequest{
		Email:    *email,
		Username: *username,
		Name:     *name,
		Password: password,
	}, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}

	fmt.Printf("Superuser %q (id=%d) created at %s\n", user.Email, user.ID, time.Now().Format(time.RFC3339))
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(password) < 5 {
		return "", fmt.Errorf("password must be at least 5 characters")
	}

	return string(password), nil
}
