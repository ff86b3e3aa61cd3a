// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/carterperez-dev/asset-portal/internal/auth"
	"github.com/carterperez-dev/asset-portal/internal/config"
	"github.com/carterperez-dev/asset-portal/internal/core"
	"github.com/carterperez-dev/asset-portal/internal/user"
)

var readPassword = term.ReadPassword

type registrar interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.ProfileResponse, error)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	name := flag.String("name", "", "employee name")
	employeeID := flag.String("employee-id", "", "employee id")
	email := flag.String("email", "", "login email")
	flag.Parse()

	if err := run(*configPath, *name, *employeeID, *email); err != nil {
		slog.Error("useradd failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, name, employeeID, email string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // process exit

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	// Registration never issues or revokes tokens.
	svc := auth.NewService(nil, user.NewService(user.NewRepository(db.DB)), nil)

	req := auth.RegisterRequest{
		Name:       name,
		EmployeeID: employeeID,
		Email:      email,
	}
	return register(ctx, svc, req, int(os.Stdin.Fd()), os.Stdout)
}

func register(
	ctx context.Context,
	svc registrar,
	req auth.RegisterRequest,
	fd int,
	out io.Writer,
) error {
	var err error

	req.Password, err = prompt(out, "Password: ", fd)
	if err != nil {
		return err
	}
	req.ConfirmPassword, err = prompt(out, "Confirm password: ", fd)
	if err != nil {
		return err
	}

	profile, err := svc.Register(ctx, req)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return fmt.Errorf("email or employee id already registered: %w", err)
		}
		return err
	}

	_, err = fmt.Fprintf(out, "registered %s (%s) as %s\n",
		profile.Name, profile.EmployeeID, profile.Email)
	return err
}

func prompt(out io.Writer, label string, fd int) (string, error) {
	if _, err := fmt.Fprint(out, label); err != nil {
		return "", err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(out) //nolint:errcheck // cosmetic newline
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
