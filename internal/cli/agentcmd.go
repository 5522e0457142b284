package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
)

// newAgentCmd creates and returns a new agent command
func newAgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run analytics and loads on the agent backend",
	}
	cmd.AddCommand(newAgentRunCmd())
	cmd.AddCommand(newAgentNarrateCmd())
	cmd.AddCommand(newAgentLoadCmd())
	cmd.AddCommand(newAgentProgramsCmd())
	return cmd
}

func newAgentRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -f <file>",
		Short: "Execute an analytics request from a YAML or JSON file",
		Long: `Run an analytics request against the agent.

Example request:
  poblacion:
    dataset: egresados
    programa: ATI
  distribuciones:
    - satisfaccion_general
  tipo_analitica: descriptiva`,
		RunE: runAgentRun,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the analytics request file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runAgentRun(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	var req api.AnalyticsRequest
	if err := readResourceFile(file, &req); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	result, err := rt.Agent.RunAnalytics(cmd.Context(), req)
	if err != nil {
		return err
	}

	rt.Audit.AnalyticsRun(req.TipoAnalitica, req.Poblacion.Dataset, nil)

	printJSON(result)
	return nil
}

func newAgentNarrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrate -f <file>",
		Short: "Generate narrative text for a computed result",
		RunE:  runAgentNarrate,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the narrative request file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runAgentNarrate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	var req api.NarrativeRequest
	if err := readResourceFile(file, &req); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	resp, err := rt.Agent.GenerateNarrative(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}
	fmt.Println(resp.Texto)
	return nil
}

func newAgentLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <dataset>",
		Short: "Load a stored file into the warehouse",
		Long: `Load triggers the agent's ETL for a file already present in object
storage.

Example:
  mirador agent load egresados --programa ATI --data-version v1.0 --filename egresados.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: runAgentLoad,
	}
	cmd.Flags().String("programa", "", "Program the file belongs to")
	cmd.Flags().String("data-version", "", "Dataset version label")
	cmd.Flags().String("filename", "", "Object name in storage")
	cmd.MarkFlagRequired("programa")
	cmd.MarkFlagRequired("filename")
	return cmd
}

func runAgentLoad(cmd *cobra.Command, args []string) error {
	programa, _ := cmd.Flags().GetString("programa")
	version, _ := cmd.Flags().GetString("data-version")
	filename, _ := cmd.Flags().GetString("filename")

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	result, err := rt.Agent.LoadFromObjectStorage(cmd.Context(), args[0], programa, version, filename)
	if err != nil {
		return err
	}

	rt.Audit.ETLLoad(args[0], programa, nil)

	if jsonOutput {
		printJSON(result)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Load %s", result.Status)
	if result.Rows > 0 {
		fmt.Printf(" (%d rows)", result.Rows)
	}
	fmt.Println()
	return nil
}

func newAgentProgramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programs",
		Short: "List programs known to the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			programa, _ := cmd.Flags().GetString("programa")
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			programs, err := rt.Agent.ProgramCatalog(cmd.Context(), programa)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(programs)
				return nil
			}
			for _, p := range programs {
				fmt.Printf("%s", p.Programa)
				for _, v := range p.Versions {
					fmt.Printf(" %s", v)
				}
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().String("programa", "", "Restrict to one program")
	return cmd
}
