package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
)

// statsFilters reads the shared --programa/--version flags.
func statsFilters(cmd *cobra.Command) api.StatsFilters {
	programa, _ := cmd.Flags().GetString("programa")
	version, _ := cmd.Flags().GetString("version")
	return api.StatsFilters{Programa: programa, Version: version}
}

func addStatsFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("programa", "", "Filter by program code")
	cmd.Flags().String("version", "", "Filter by dataset version")
}

// newStatsCmd creates and returns a new stats command
func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Query survey statistics",
	}
	cmd.AddCommand(newStatsKPIsCmd())
	cmd.AddCommand(newStatsResponsesCmd())
	cmd.AddCommand(newStatsQuestionCmd())
	cmd.AddCommand(newStatsBatchCmd())
	cmd.AddCommand(newStatsColumnsCmd())
	cmd.AddCommand(newStatsSatisfactionCmd())
	cmd.AddCommand(newStatsProgramsCmd())
	return cmd
}

func newStatsKPIsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Show the headline KPI report",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			report, err := rt.Stats.KPIs(cmd.Context(), statsFilters(cmd))
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(report)
				return nil
			}
			fmt.Printf("Total responses:  %d\n", report.TotalResponses)
			fmt.Printf("Total egresados:  %d\n", report.TotalEgresados)
			fmt.Printf("Total profesores: %d\n", report.TotalProfesores)
			if report.LatestVersion != "" {
				fmt.Printf("Latest version:   %s\n", report.LatestVersion)
			}
			for _, p := range report.ByPrograma {
				fmt.Printf("  %s: %d\n", p.Programa, p.Count)
			}
			return nil
		},
	}
	addStatsFilterFlags(cmd)
	return cmd
}

func newStatsResponsesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "responses <dataset>",
		Short: "Show response counts per program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			rows, err := rt.Stats.ResponsesPerProgram(cmd.Context(), args[0], statsFilters(cmd))
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(rows)
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PROGRAM\tRESPONSES")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%d\n", r.Programa, r.Responses)
			}
			return w.Flush()
		},
	}
	addStatsFilterFlags(cmd)
	return cmd
}

func newStatsQuestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question <dataset> <column>",
		Short: "Show the answer distribution for one question column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			analysis, err := rt.Stats.QuestionAnalysis(cmd.Context(), args[0], args[1], statsFilters(cmd))
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(analysis)
				return nil
			}
			printQuestionAnalysis(analysis)
			return nil
		},
	}
	addStatsFilterFlags(cmd)
	return cmd
}

func newStatsBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dataset> <column>...",
		Short: "Analyze several question columns in one request",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			analyses, err := rt.Stats.QuestionsBatch(cmd.Context(), args[0], args[1:], statsFilters(cmd))
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(analyses)
				return nil
			}
			for i := range analyses {
				if i > 0 {
					fmt.Println()
				}
				printQuestionAnalysis(&analyses[i])
			}
			return nil
		},
	}
	addStatsFilterFlags(cmd)
	return cmd
}

func printQuestionAnalysis(a *api.QuestionAnalysis) {
	fmt.Printf("%s (%d answers)\n", a.Question, a.TotalAnswers)
	for _, b := range a.Distribution {
		fmt.Printf("  %-30s %6d  %5.1f%%\n", b.Answer, b.Count, b.Percentage)
	}
}

func newStatsColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <dataset>",
		Short: "List question columns available for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			columns, err := rt.Stats.AvailableColumns(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(columns)
				return nil
			}
			for _, c := range columns {
				fmt.Println(c)
			}
			return nil
		},
	}
}

func newStatsSatisfactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "satisfaction <dataset>",
		Short: "Show the satisfaction aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			analysis, err := rt.Stats.SatisfactionAnalysis(cmd.Context(), args[0], statsFilters(cmd))
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(analysis)
				return nil
			}
			fmt.Printf("Average satisfaction: %.2f (n=%d)\n", analysis.Average, analysis.SampleSize)
			for q, v := range analysis.ByQuestion {
				fmt.Printf("  %-30s %.2f\n", q, v)
			}
			return nil
		},
	}
	addStatsFilterFlags(cmd)
	return cmd
}

func newStatsProgramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List programs present in the warehouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			programs, err := rt.Stats.Programs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(programs)
				return nil
			}
			for _, p := range programs {
				fmt.Println(p)
			}
			return nil
		},
	}
}
