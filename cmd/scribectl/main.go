package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"scribe/internal/errors"
)

// Supported subcommands:
// - migrate:      apply (or with -down roll back one) schema migration
// - create-roles: insert the fixed roles
// - create-admin: insert an admin account

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	createRolesCmd := flag.NewFlagSet("create-roles", flag.ExitOnError)
	createAdminCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)

	migrateDown := migrateCmd.Bool("down", false, "Roll back the most recent migration instead of applying pending ones")

	adminName := createAdminCmd.String("name", "", "Name of the admin account")
	adminPassword := createAdminCmd.String("password", "", "Password of the admin account")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := ctlFlags{
		Migrate: migrateFlags{
			cmd:  migrateCmd,
			down: migrateDown,
		},
		CreateRoles: createRolesFlags{
			cmd: createRolesCmd,
		},
		CreateAdmin: createAdminFlags{
			cmd:      createAdminCmd,
			name:     adminName,
			password: adminPassword,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type ctlFlags struct {
	Migrate     migrateFlags
	CreateRoles createRolesFlags
	CreateAdmin createAdminFlags
}

type migrateFlags struct {
	cmd  *flag.FlagSet
	down *bool
}

type createRolesFlags struct {
	cmd *flag.FlagSet
}

type createAdminFlags struct {
	cmd      *flag.FlagSet
	name     *string
	password *string
}

func runSubcommand(ctx context.Context, flags *ctlFlags) error {
	switch os.Args[1] {
	case "migrate":
		return handleMigrate(ctx, flags)
	case "create-roles":
		return handleCreateRoles(ctx, flags)
	case "create-admin":
		return handleCreateAdmin(ctx, flags)
	case "help", "-h", "--help":
		printUsage()

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown subcommand %q", os.Args[1])
	}
}

func handleMigrate(ctx context.Context, flags *ctlFlags) error {
	if err := flags.Migrate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}

	return withDeps(ctx, func(d deps) error {
		return runMigrate(ctx, d, *flags.Migrate.down)
	})
}

func handleCreateRoles(ctx context.Context, flags *ctlFlags) error {
	if err := flags.CreateRoles.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}

	return withDeps(ctx, func(d deps) error {
		created, err := createRoles(ctx, d.RoleRepo)
		if err != nil {
			return err
		}
		fmt.Printf("Created %d role(s): %v\n", len(created), created)

		return nil
	})
}

func handleCreateAdmin(ctx context.Context, flags *ctlFlags) error {
	if err := flags.CreateAdmin.cmd.Parse(os.Args[2:]); err != nil {
		return errors.WithStack(err)
	}

	return withDeps(ctx, func(d deps) error {
		if err := createAdmin(ctx, d.Hasher, d.UserRepo, *flags.CreateAdmin.name, *flags.CreateAdmin.password); err != nil {
			return err
		}
		fmt.Printf("Created admin %q\n", *flags.CreateAdmin.name)

		return nil
	})
}

func printUsage() {
	fmt.Println(`Usage: scribectl <command> [flags]

Commands:
  migrate        Apply pending schema migrations
                   -down  roll back the most recent migration
  create-roles   Insert the admin, contributor and user roles if missing
  create-admin   Create an admin account
                   -name      account name
                   -password  account password

Configuration is read from config.yaml and environment variables, as for the server.`)
}
