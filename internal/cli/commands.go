// Package cli implements the mirador command line interface over the
// survey admin and analytics agent backends. Commands are thin: they parse
// flags, call a domain facade, and print. All HTTP behavior lives in the
// gateway client.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/internal/common/httpclient"
	"github.com/miradorhq/mirador/internal/common/logtrace"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	verbose    bool
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)
var warnLabel = color.New(color.FgYellow)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mirador [command] [flags]",
	Short: "Mirador CLI - administration client for the survey analytics platform",
	Long: `Mirador CLI is the administration client for the survey analytics platform.
It manages users, survey-loading processes and their files, queries statistics,
runs agent analytics, generates PDF reports, and reads the audit trail.

Examples:
  # Log in
  mirador login --username admin

  # List survey processes
  mirador process list

  # Fetch the dashboard aggregate
  mirador dashboard --dataset egresados

  # Generate a PDF report from a bundle file
  mirador report pdf -f bundle.yaml -o report.pdf`,
	PersistentPreRunE: preRunHandlePersistents,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	logtrace.InitLogger()
	if verbose {
		logtrace.SetLevel(zerolog.DebugLevel)
	} else {
		logtrace.SetLevel(zerolog.WarnLevel)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose diagnostics")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newAgentCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newStatusCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()

	flushAudit()

	if err != nil {
		// auth expiry is reported by the registered handler
		if errors.Is(err, ErrAlreadyHandled) || errors.Is(err, httpclient.ErrSessionExpired) {
			os.Exit(1)
		}
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(kv)
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// flushAudit drains queued audit events before the process exits.
func flushAudit() {
	if rt := currentRuntime(); rt != nil && rt.Audit != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rt.Audit.Close(ctx)
	}
}

// printJSON prints the given value as indented JSON on stdout.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		errorLabel.Fprintf(os.Stderr, "Error: failed to format JSON output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
