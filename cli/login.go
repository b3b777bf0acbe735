package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"otconsole/client"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the session token",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := removeSession(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", os.Getenv("OTCTL_PASSWORD"), "Account password (default $OTCTL_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("email")
}

func runLogin(cmd *cobra.Command, args []string) error {
	if loginPassword == "" {
		return errors.New("password required: pass --password or set OTCTL_PASSWORD")
	}

	server := resolveServer(nil)
	session, err := client.New(server, nil).Login(cmd.Context(), loginEmail, loginPassword)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := saveSession(&savedSession{Server: server, Session: session}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged in to %s as %s (%s).\n", server, session.User.Email, session.User.Role)
	if session.User.MustChangePassword {
		fmt.Fprintln(out, "The password must be changed in the console before anything else is allowed.")
	}
	return nil
}
