package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
)

// newStatusCmd creates and returns a new status command
func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe backend health",
		Long: `Status probes the application database, the ETL warehouse, and the
object store. Each probe is retried a few times before being reported
down, so a backend that is momentarily restarting does not show as an
outage.`,
		RunE: runStatus,
	}
	cmd.Flags().Uint("retries", 3, "Attempts per probe before reporting failure")
	return cmd
}

// probeResult is one health probe outcome for display.
type probeResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	attempts, _ := cmd.Flags().GetUint("retries")

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	probes := []struct {
		name string
		fn   func(context.Context) (*api.HealthStatus, error)
	}{
		{"database", rt.Health.Database},
		{"warehouse", rt.Health.DatabaseETL},
		{"object-store", rt.Health.ObjectStore},
	}

	results := make([]probeResult, 0, len(probes))
	failed := false

	for _, p := range probes {
		status, err := retry.DoWithData(
			func() (*api.HealthStatus, error) { return p.fn(ctx) },
			retry.Context(ctx),
			retry.Attempts(attempts),
			retry.Delay(500*time.Millisecond),
			retry.LastErrorOnly(true),
		)
		result := probeResult{Name: p.name}
		if err != nil {
			result.Status = "down"
			result.Error = err.Error()
			failed = true
		} else {
			result.Status = status.Status
			result.Detail = status.Detail
			if status.MinClientVersion != "" {
				if err := checkClientVersion(status.MinClientVersion); err != nil {
					result.Detail = err.Error()
					failed = true
				}
			}
		}
		results = append(results, result)
	}

	if jsonOutput {
		printJSON(results)
	} else {
		for _, r := range results {
			if r.Error != "" {
				errorLabel.Printf("✗ %-12s %s (%s)\n", r.Name, r.Status, r.Error)
			} else {
				okLabel.Printf("✓ %-12s %s\n", r.Name, r.Status)
			}
		}
	}

	if failed {
		return fmt.Errorf("one or more backends are unhealthy")
	}
	return nil
}

// checkClientVersion compares this build against the oldest client version
// the backend still supports.
func checkClientVersion(minVersion string) error {
	minimum, err := semver.NewVersion(strings.TrimPrefix(minVersion, "v"))
	if err != nil {
		// an unparseable advertisement never blocks the probe
		return nil
	}
	current, err := semver.NewVersion(strings.TrimPrefix(Version, "v"))
	if err != nil {
		return nil
	}
	if current.LessThan(minimum) {
		return fmt.Errorf("client %s is older than the minimum supported version %s; please upgrade", Version, minVersion)
	}
	return nil
}
