package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the survey admin backend",
		Long: `Login authenticates against the backend and stores the bearer token
in the session file. All other commands use that token until it expires
or 'mirador logout' removes it.

Example:
  mirador login --username admin --password secret
  mirador login --username admin  # prompts for the password`,
		RunE: runLogin,
	}

	cmd.Flags().StringP("username", "u", "", "Username to authenticate as")
	cmd.Flags().StringP("password", "p", "", "Password (prompted for when omitted)")
	cmd.MarkFlagRequired("username")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")

	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}
	if password == "" {
		return fmt.Errorf("no password provided")
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if _, err := rt.Auth.Login(ctx, username, password); err != nil {
		return err
	}

	user, err := rt.Auth.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("login succeeded but fetching the profile failed: %w", err)
	}

	rt.Audit.UserLogin(user.Username)

	if jsonOutput {
		printJSON(user)
		return nil
	}

	okLabel.Print("✓ ")
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}
