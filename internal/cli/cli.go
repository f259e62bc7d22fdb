// Package cli is the display layer: a text menu loop over the auth service.
// It collects input, translates every failure kind into a user-facing
// message and never echoes passwords to a visible terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"authcore/internal/domain/models"
	libjwt "authcore/internal/lib/jwt"
	"authcore/internal/lib/logger/sl"
	authservice "authcore/internal/services/auth"
)

// Demo accounts seeded at startup when absent.
const (
	demoAdminUser = "admin"
	demoAdminPass = "Admin123!"
	demoAliUser   = "ali"
	demoAliPass   = "Ali123456"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (models.Account, error)
	Login(ctx context.Context, username, password string) (models.Account, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	Exists(ctx context.Context, username string) (bool, error)
	Accounts(ctx context.Context) ([]models.Account, error)
}

type App struct {
	log           *slog.Logger
	validator     *validator.Validate
	authService   AuthService
	in            *bufio.Reader
	out           io.Writer
	sessionSecret string
	sessionTTL    time.Duration
}

func New(log *slog.Logger, authService AuthService, sessionSecret string, sessionTTL time.Duration) *App {
	return &App{
		log:           log,
		validator:     validator.New(),
		authService:   authService,
		in:            bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		sessionSecret: sessionSecret,
		sessionTTL:    sessionTTL,
	}
}

// SeedDemoAccounts registers the two demo accounts if they are absent.
func (a *App) SeedDemoAccounts(ctx context.Context) error {
	const op = "cli.SeedDemoAccounts"
	log := a.log.With(slog.String("op", op))

	seeds := []struct{ username, password string }{
		{demoAdminUser, demoAdminPass},
		{demoAliUser, demoAliPass},
	}

	for _, seed := range seeds {
		exists, err := a.authService.Exists(ctx, seed.username)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			continue
		}

		if _, err := a.authService.Register(ctx, seed.username, seed.password); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		log.Info("seeded demo account", slog.String("username", seed.username))
	}

	return nil
}

// Run drives the menu loop until the user exits or the context is canceled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, titleStyle.Render("auth console"))

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "1) register")
		fmt.Fprintln(a.out, "2) login")
		fmt.Fprintln(a.out, "3) change password")
		fmt.Fprintln(a.out, "4) list accounts")
		fmt.Fprintln(a.out, "5) exit")

		choice, err := a.readLine("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			a.handleRegister(ctx)
		case "2":
			a.handleLogin(ctx)
		case "3":
			a.handleChangePassword(ctx)
		case "4":
			a.handleListAccounts(ctx)
		case "5", "q", "exit":
			fmt.Fprintln(a.out, "bye")
			return nil
		default:
			fmt.Fprintln(a.out, warnStyle.Render("unknown choice"))
		}
	}
}

func (a *App) handleRegister(ctx context.Context) {
	username, ok := a.promptUsername()
	if !ok {
		return
	}

	password, err := a.readPassword("password: ")
	if err != nil {
		a.printInternal(err)
		return
	}

	if _, err := a.authService.Register(ctx, username, password); err != nil {
		fmt.Fprintln(a.out, a.renderError(err))
		return
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("account %q registered", username)))
}

func (a *App) handleLogin(ctx context.Context) {
	username, ok := a.promptUsername()
	if !ok {
		return
	}

	password, err := a.readPassword("password: ")
	if err != nil {
		a.printInternal(err)
		return
	}

	account, err := a.authService.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, a.renderError(err))
		return
	}

	fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("welcome, %s", account.Username)))

	token, err := libjwt.NewToken(&account, a.sessionSecret, a.sessionTTL)
	if err != nil {
		a.log.Error("failed to generate session token", sl.Err(err))
		return
	}
	fmt.Fprintln(a.out, promptStyle.Render("session token: ")+token)
}

func (a *App) handleChangePassword(ctx context.Context) {
	username, ok := a.promptUsername()
	if !ok {
		return
	}

	oldPassword, err := a.readPassword("current password: ")
	if err != nil {
		a.printInternal(err)
		return
	}

	newPassword, err := a.readPassword("new password: ")
	if err != nil {
		a.printInternal(err)
		return
	}

	if err := a.authService.ChangePassword(ctx, username, oldPassword, newPassword); err != nil {
		fmt.Fprintln(a.out, a.renderError(err))
		return
	}

	fmt.Fprintln(a.out, successStyle.Render("password changed"))
}

func (a *App) handleListAccounts(ctx context.Context) {
	accounts, err := a.authService.Accounts(ctx)
	if err != nil {
		fmt.Fprintln(a.out, a.renderError(err))
		return
	}

	sort.Slice(accounts, func(i, j int) bool {
		return strings.ToLower(accounts[i].Username) < strings.ToLower(accounts[j].Username)
	})

	for _, account := range accounts {
		status := "active"
		if account.Locked(time.Now()) {
			status = "locked"
		}
		fmt.Fprintf(a.out, "%-32s %s  created %s\n",
			account.Username, status, account.CreatedAt.Format(time.DateTime))
	}
}

func (a *App) promptUsername() (string, bool) {
	username, err := a.readLine("username: ")
	if err != nil {
		a.printInternal(err)
		return "", false
	}

	username = strings.TrimSpace(username)
	if err := a.validateUsername(username); err != nil {
		fmt.Fprintln(a.out, warnStyle.Render(err.Error()))
		return "", false
	}

	return username, true
}

func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprint(a.out, promptStyle.Render(prompt))

	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads without echo when stdin is a terminal, falling back to
// a plain buffered read so the binary stays usable under pipes and tests.
func (a *App) readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return a.readLine(prompt)
	}

	fmt.Fprint(a.out, promptStyle.Render(prompt))
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

// renderError maps every expected failure kind to a user-facing message.
func (a *App) renderError(err error) string {
	var (
		invalidErr *authservice.InvalidCredentialsError
		lockedErr  *authservice.LockedError
		weakErr    *authservice.WeakPasswordError
	)

	switch {
	case errors.As(err, &lockedErr):
		return errorStyle.Render(fmt.Sprintf("account is locked, try again in %d second(s)", lockedErr.Seconds()))
	case errors.As(err, &invalidErr):
		return errorStyle.Render(fmt.Sprintf("wrong password, %d attempt(s) left", invalidErr.AttemptsLeft))
	case errors.As(err, &weakErr):
		return warnStyle.Render("weak password: " + strings.Join(weakErr.Reasons, ", "))
	case errors.Is(err, authservice.ErrAccountExists):
		return warnStyle.Render(MsgAccountExists)
	case errors.Is(err, authservice.ErrAccountNotFound):
		return errorStyle.Render(MsgAccountNotFound)
	}

	a.log.Error("unexpected error", sl.Err(err))
	return errorStyle.Render(MsgInternal)
}

func (a *App) printInternal(err error) {
	a.log.Error("input error", sl.Err(err))
	fmt.Fprintln(a.out, errorStyle.Render(MsgInternal))
}
