// Command bootstrap-user creates an initial account directly in the
// database, bypassing the HTTP API. Useful for seeding a fresh deployment.
package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/taskvault/taskvault/internal/auth"
	"github.com/taskvault/taskvault/internal/repository"
)

type output struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		username    = flag.String("username", "admin", "Username for the new account")
		password    = flag.String("password", "", "Password; generated when empty")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *username == "" {
		fmt.Fprintln(os.Stderr, "username must not be empty")
		os.Exit(1)
	}

	plaintext := *password
	if plaintext == "" {
		generated, err := generatePassword()
		if err != nil {
			fmt.Fprintln(os.Stderr, "generate password:", err)
			os.Exit(1)
		}
		plaintext = generated
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	hash, salt, err := auth.CreateHash(plaintext)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	user, err := repo.CreateUser(ctx, *username, hash, salt)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			fmt.Fprintf(os.Stderr, "username %q is already taken\n", *username)
		} else {
			fmt.Fprintln(os.Stderr, "create user:", err)
		}
		os.Exit(1)
	}

	out := output{
		UserID:   user.ID,
		Username: user.Username,
		Password: plaintext,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.Password)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func generatePassword() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
