package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDashboardCmd creates and returns a new dashboard command
func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch the dashboard aggregate in one shot",
		Long: `Dashboard fetches the KPI report, per-program responses, the program
list, and the satisfaction aggregate concurrently. A failed satisfaction
fetch is reported inline; any other failure aborts the whole batch.`,
		RunE: runDashboard,
	}
	cmd.Flags().String("dataset", "egresados", "Dataset to aggregate")
	addStatsFilterFlags(cmd)
	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	dataset, _ := cmd.Flags().GetString("dataset")

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	dash, err := rt.Stats.FetchDashboard(cmd.Context(), dataset, statsFilters(cmd))
	if err != nil {
		return err
	}

	if jsonOutput {
		out := map[string]any{
			"kpis":      dash.KPIs,
			"responses": dash.Responses,
			"programs":  dash.Programs,
		}
		if dash.Satisfaction.Ok() {
			out["satisfaction"] = dash.Satisfaction.Value
		} else {
			out["satisfaction_error"] = dash.Satisfaction.Err.Error()
		}
		printJSON(out)
		return nil
	}

	fmt.Printf("Total responses:  %d\n", dash.KPIs.TotalResponses)
	fmt.Printf("Total egresados:  %d\n", dash.KPIs.TotalEgresados)
	fmt.Printf("Total profesores: %d\n", dash.KPIs.TotalProfesores)
	fmt.Printf("Programs:         %d\n", len(dash.Programs))
	for _, r := range dash.Responses {
		fmt.Printf("  %-20s %d\n", r.Programa, r.Responses)
	}
	if dash.Satisfaction.Ok() {
		fmt.Printf("Satisfaction:     %.2f\n", dash.Satisfaction.Value.Average)
	} else {
		warnLabel.Printf("Satisfaction unavailable: %v\n", dash.Satisfaction.Err)
	}
	return nil
}
