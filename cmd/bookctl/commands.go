package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bookcrossing/internal/bookcrossing/adapters/postgres"
	"bookcrossing/internal/bookcrossing/adapters/services"
	"bookcrossing/internal/bookcrossing/app"
	"bookcrossing/internal/bookcrossing/config"
	"bookcrossing/internal/bookcrossing/domain/entities"
	pgdb "bookcrossing/pkg/db/postgres"
)

// Ошибки утилиты.
var (
	ErrInvalidSteps  = errors.New("steps must be positive")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Administrative tool for the bookcrossing service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCmd(), newUserCmd(), newBooksCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := pgdb.MigrateDSN(cmd.Context(), cfg.Postgres.GetConnectionURL(), cfg.Migrations.Dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migrations",
		Args:  cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if steps <= 0 {
				return ErrInvalidSteps
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := pgdb.RollbackDSN(cmd.Context(), cfg.Postgres.GetConnectionURL(), cfg.Migrations.Dir, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var email string
	register := &cobra.Command{
		Use:   "register",
		Short: "Register a user, the password is read without echo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}

			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), cfg, func(factory *postgres.RepositoryFactory) error {
				serviceFactory := services.NewServiceFactory(cfg.Session.SecretKey, cfg.Password.BCryptCost)
				// Регистрации сессии не нужны.
				auth := app.NewAuthUseCase(factory.UserRepository(), serviceFactory.PasswordService(), nil, nil, 0)

				userID, err := auth.Register(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered user %s\n", userID)
				return nil
			})
		},
	}
	register.Flags().StringVar(&email, "email", "", "user email")
	_ = register.MarkFlagRequired("email")

	cmd.AddCommand(register)
	return cmd
}

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Inspect the catalog",
	}

	var owner string
	list := &cobra.Command{
		Use:   "list",
		Short: "List available books, or every book of one owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}

			return withDatabase(cmd.Context(), cfg, func(factory *postgres.RepositoryFactory) error {
				books := app.NewBookUseCase(factory.BookRepository(), nil)

				var (
					found []*entities.Book
					err   error
				)
				if owner != "" {
					found, err = books.ListByOwner(cmd.Context(), owner)
				} else {
					found, err = books.ListAvailable(cmd.Context())
				}
				if err != nil {
					return err
				}
				return printBooks(cmd.OutOrStdout(), found)
			})
		},
	}
	list.Flags().StringVar(&owner, "owner", "", "owner user id")

	cmd.AddCommand(list)
	return cmd
}

func withDatabase(ctx context.Context, cfg *config.Config, fn func(*postgres.RepositoryFactory) error) error {
	database, err := pgdb.New(ctx, cfg.Postgres.Options())
	if err != nil {
		return err
	}
	defer database.Close(ctx)

	return fn(postgres.NewRepositoryFactory(database.Pool()))
}

func printBooks(w io.Writer, books []*entities.Book) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tOWNER\tAVAILABLE\tHOLDER")
	for _, b := range books {
		holder := "-"
		if b.HolderID != nil {
			holder = *b.HolderID
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n", b.ID, b.Title, b.Author, b.OwnerID, b.Available, holder)
	}
	return tw.Flush()
}

// readPassword читает пароль без эха, если in - терминал, иначе первую строку ввода.
func readPassword(in io.Reader, prompt io.Writer, label string) (string, error) {
	var raw string

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		raw = string(b)
	} else {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		raw = line
	}

	password := strings.TrimRight(raw, "\r\n")
	if password == "" {
		return "", ErrEmptyPassword
	}
	return password, nil
}
