package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/shelfspace/shelfspace/internal/adapter/postgres"
	"github.com/shelfspace/shelfspace/internal/config"
	"github.com/shelfspace/shelfspace/internal/domain/tenant"
	"github.com/shelfspace/shelfspace/internal/domain/user"
	"github.com/shelfspace/shelfspace/internal/service"
)

// runAdmin dispatches admin subcommands (reset-password, create-user, list-users).
func runAdmin(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printAdminHelp()
		return nil
	}

	switch args[0] {
	case "reset-password":
		return runAdminResetPassword(args[1:])
	case "create-user":
		return runAdminCreateUser(args[1:])
	case "list-users":
		return runAdminListUsers(args[1:])
	default:
		printAdminHelp()
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func printAdminHelp() {
	fmt.Fprintf(os.Stderr, `Usage: shelfspace admin <command> [options]

Commands:
  reset-password   Reset a user's password
  create-user      Create a new account (with its own store when --admin)
  list-users       List accounts, optionally filtered by store slug
  help             Show this help message

Examples:
  shelfspace admin reset-password --email owner@example.com
  shelfspace admin reset-password --email owner@example.com --password NewPass123!
  shelfspace admin create-user --email owner@example.com --name "Alice" --store "Alice's Books" --admin
  shelfspace admin list-users --store alices-books
`)
}

func loadAdminDeps() (*service.AuthService, *postgres.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)

	cleanup := func() {
		pool.Close()
	}
	return authSvc, store, cleanup, nil
}

func runAdminResetPassword(args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email address (required)")
	password := fs.String("password", "", "new password (prompted if not provided)") //nolint:gosec // CLI flag
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}

	newPass := *password
	if newPass == "" {
		var err error
		newPass, err = promptPassword("New password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if newPass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	authSvc, _, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if err := authSvc.AdminResetPassword(ctx, *email, newPass); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Password reset successfully for %s\n", *email)
	return nil
}

func runAdminCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	email := fs.String("email", "", "account email address (required)")
	name := fs.String("name", "", "account display name (required)")
	storeName := fs.String("store", "", "store name for a new admin (defaults to \"<name>'s Bookstore\")")
	password := fs.String("password", "", "password (prompted if not provided)") //nolint:gosec // CLI flag
	admin := fs.Bool("admin", false, "create a store owner instead of a customer")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return fmt.Errorf("--email is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	pass := *password
	if pass == "" {
		var err error
		pass, err = promptPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if pass != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	role := user.RoleCustomer
	if *admin {
		role = user.RoleAdmin
	}

	authSvc, _, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	sess, err := authSvc.Register(ctx, &user.RegisterRequest{
		Email:     *email,
		Name:      *name,
		Password:  pass,
		Role:      role,
		StoreName: *storeName,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(os.Stderr, "User created: %s (id=%s, role=%s, store=%s)\n",
		sess.User.Email, sess.User.ID, sess.User.Role, sess.Tenant.StoreName)
	return nil
}

func runAdminListUsers(args []string) error {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	slug := fs.String("store", "", "store slug to filter by (all stores when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	authSvc, store, cleanup, err := loadAdminDeps()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()

	var tenants []tenant.Tenant
	if *slug != "" {
		t, err := store.GetTenantBySlug(ctx, *slug)
		if err != nil {
			return fmt.Errorf("get store: %w", err)
		}
		tenants = []tenant.Tenant{*t}
	} else {
		tenants, err = store.ListTenants(ctx)
		if err != nil {
			return fmt.Errorf("list stores: %w", err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tSTORE")
	total := 0
	for i := range tenants {
		users, err := authSvc.ListUsers(ctx, tenants[i].ID)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		for j := range users {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				users[j].ID, users[j].Email, users[j].Name, users[j].Role, tenants[i].StoreName)
		}
		total += len(users)
	}
	if total == 0 {
		fmt.Println("No users found.")
		return nil
	}
	return w.Flush()
}

// promptPassword reads a password from the terminal without echoing.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin)) //nolint:unconvert // int conversion needed on some platforms
	fmt.Fprintln(os.Stderr)                         // newline after password input
	if err != nil {
		return "", err
	}
	return string(b), nil
}
