package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/internal/common/session"
)

// newSessionCmd creates and returns a new session command
func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or refresh the current session",
	}
	cmd.AddCommand(newSessionStatusCmd())
	cmd.AddCommand(newSessionRefreshCmd())
	return cmd
}

func newSessionStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is logged in and when the token expires",
		RunE:  runSessionStatus,
	}
}

func runSessionStatus(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	token := rt.Store.Token()
	if token == "" {
		if jsonOutput {
			printJSON(map[string]any{"authenticated": false})
			return nil
		}
		warnLabel.Println("Not logged in")
		return nil
	}

	claims, err := session.DecodeClaims(token)
	if err != nil {
		return fmt.Errorf("stored token is not readable: %w", err)
	}

	expired := !claims.ExpiresAt.IsZero() && time.Now().After(claims.ExpiresAt)

	if jsonOutput {
		printJSON(map[string]any{
			"authenticated": !expired,
			"subject":       claims.Subject,
			"expires_at":    claims.ExpiresAt,
			"issued_at":     claims.IssuedAt,
		})
		return nil
	}

	fmt.Printf("Logged in as: %s\n", claims.Subject)
	if !claims.ExpiresAt.IsZero() {
		if expired {
			warnLabel.Printf("Token expired at %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		} else {
			fmt.Printf("Token expires: %s\n", claims.ExpiresAt.Local().Format(time.RFC1123))
		}
	}
	return nil
}

func newSessionRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the current token for a fresh one",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			if _, err := rt.Auth.Refresh(cmd.Context()); err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"status": "refreshed"})
				return nil
			}
			okLabel.Print("✓ ")
			fmt.Println("Session refreshed")
			return nil
		},
	}
}
