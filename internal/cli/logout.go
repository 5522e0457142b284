package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/internal/common/session"
)

// newLogoutCmd creates and returns a new logout command
func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE:  runLogout,
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	// record who logged out while the token can still authenticate the
	// audit call, then drain before the token goes away
	if token := rt.Store.Token(); token != "" {
		if claims, err := session.DecodeClaims(token); err == nil {
			rt.Audit.UserLogout(claims.Subject)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		rt.Audit.Close(ctx)
	}

	if err := rt.Auth.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{"status": "logged out"})
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Println("Logged out")
	return nil
}
