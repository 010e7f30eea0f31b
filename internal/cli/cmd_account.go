package cli

import (
	"errors"
	"fmt"

	"swiftstock/internal/app"
	"swiftstock/internal/services"

	"github.com/spf13/cobra"
)

func newBootstrapCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create missing tables and the default account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Store ready at %s\n", a.Config.DatabaseDSN)
				return err
			})
		},
	}
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if !a.Auth.Login(email, password) {
					return services.ErrInvalidCredentials
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if err := a.Auth.Logout(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return err
			})
		},
	}
}

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an account is logged in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if email, ok := a.Auth.CurrentUser(); ok {
					_, err := fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return err
			})
		},
	}
}

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				accounts, err := a.Auth.Accounts()
				if err != nil {
					return err
				}
				for _, account := range accounts {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", account.ID, account.Email); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newUpdateAccountCommand(opts *rootOptions) *cobra.Command {
	var current, newEmail, newPassword string

	cmd := &cobra.Command{
		Use:   "update-account",
		Short: "Change the email and password of the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				result := a.Auth.UpdateAccount(current, newEmail, newPassword)
				if !result.Success {
					return errors.New(result.Message)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&current, "current-password", "", "Current password")
	cmd.Flags().StringVar(&newEmail, "new-email", "", "New email")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password")
	return cmd
}

func newResetAccountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-accounts",
		Short: "Drop every account and recreate the default one",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				if err := a.Auth.ResetAccounts(); err != nil {
					return err
				}
				if err := a.Auth.Logout(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Accounts reset")
				return err
			})
		},
	}
}
