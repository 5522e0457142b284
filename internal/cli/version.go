package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the client version, overridable at build time with
// -ldflags "-X github.com/miradorhq/mirador/internal/cli.Version=...".
var Version = "0.1.0-dev"

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				printJSON(map[string]string{"version": Version})
				return nil
			}
			fmt.Println("mirador version " + Version)
			return nil
		},
	}
}
