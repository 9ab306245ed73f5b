package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophershop/internal/server/auth"
)

type rootOptions struct {
	configFile string
	dsn        string
	secret     string
}

// serverArgs turns the global flags into the argument list understood by
// the server's config loader.
func (o *rootOptions) serverArgs() []string {
	var args []string
	if o.configFile != "" {
		args = append(args, "-c", o.configFile)
	}
	if o.dsn != "" {
		args = append(args, "-d", o.dsn)
	}
	if o.secret != "" {
		args = append(args, "-s", o.secret)
	}
	return args
}

// withBackend opens the backend for the duration of fn.
func (o *rootOptions) withBackend(ctx context.Context, fn func(*backend) error) error {
	b, err := openBackend(ctx, o.serverArgs())
	if err != nil {
		return err
	}
	defer b.close()
	return fn(b)
}

// NewRootCmd creates the root command for shopadmin.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "shopadmin",
		Short:         "GopherShop administration tool",
		Long:          `shopadmin manages GopherShop accounts and tokens directly against the shop database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "server JSON config file path")
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "database DSN (overrides the config file)")
	cmd.PersistentFlags().StringVar(&opts.secret, "secret", "", "token signing secret (overrides the config file)")

	cmd.AddCommand(newUserCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	cmd.AddCommand(newImageCmd(opts))
	cmd.AddCommand(newHashCmd())

	return cmd
}

func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserCreateCmd(opts))
	cmd.AddCommand(newUserDeleteCmd(opts))
	return cmd
}

func newUserCreateCmd(opts *rootOptions) *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := getPassword(cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}
			return opts.withBackend(cmd.Context(), func(b *backend) error {
				u, err := b.accounts.Register(cmd.Context(), username, email, password)
				if err != nil {
					return fmt.Errorf("create user: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %q (id %d)\n", u.Username, u.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserDeleteCmd(opts *rootOptions) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account; its tokens stop working immediately",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd.Context(), func(b *backend) error {
				u, err := b.accounts.GetByUsername(cmd.Context(), username)
				if err != nil {
					return fmt.Errorf("find user %q: %w", username, err)
				}
				if err := b.accounts.Delete(cmd.Context(), u.ID); err != nil {
					return fmt.Errorf("delete user: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %q\n", username)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bearer tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(opts))
	return cmd
}

func newTokenIssueCmd(opts *rootOptions) *cobra.Command {
	var (
		username string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackend(cmd.Context(), func(b *backend) error {
				u, err := b.accounts.GetByUsername(cmd.Context(), username)
				if err != nil {
					return fmt.Errorf("find user %q: %w", username, err)
				}
				tok, err := b.tokens.IssueToken(u, ttl)
				if err != nil {
					return fmt.Errorf("issue token: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), tok.AccessToken)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (0 uses the configured default)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newHashCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := getPassword(cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}
			hash, err := auth.NewBcryptHasher(cost).Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost factor")
	return cmd
}
