// Package cli implements the operator subcommands of the dailybrew binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"

	"go.uber.org/zap"

	"github.com/terraincognita07/dailybrew/internal/db"
	"github.com/terraincognita07/dailybrew/internal/security"
	"github.com/terraincognita07/dailybrew/internal/services"
)

const generatedPasswordLength = 16

type SetPasswordOptions struct {
	DBPath   string
	Email    string
	Generate bool
	Stdin    *os.File
	Stdout   io.Writer
	Log      *zap.Logger
}

// RunSetPasswordCommand sets the login password of an existing user, either
// read from the terminal or generated and printed once.
func RunSetPasswordCommand(ctx context.Context, options SetPasswordOptions) error {
	email := services.NormalizeEmail(options.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	if options.Log == nil {
		options.Log = zap.NewNop()
	}

	password, err := resolveNewPassword(options)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(options.DBPath, options.Log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	users := services.NewUserService(db.NewUserRepository(database))
	user, err := users.SetPassword(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return fmt.Errorf("user %s not found", email)
		case errors.Is(err, services.ErrWeakPassword):
			return errors.New("password must be at least 8 characters and mix upper case, lower case and digits")
		default:
			return fmt.Errorf("set password: %w", err)
		}
	}

	fmt.Fprintf(options.Stdout, "Password updated for %s <%s>\n", user.Name, user.Email)
	if options.Generate {
		fmt.Fprintf(options.Stdout, "Generated password: %s\n", password)
	}
	return nil
}

func resolveNewPassword(options SetPasswordOptions) (string, error) {
	if options.Generate {
		password, err := security.GeneratePassword(generatedPasswordLength)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		return password, nil
	}
	return promptNewPassword(options.Stdin, options.Stdout)
}
