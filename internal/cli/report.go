package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
)

// newReportCmd creates and returns a new report command
func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate reports from analytics results",
	}
	cmd.AddCommand(newReportPDFCmd())
	return cmd
}

func newReportPDFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdf -f <bundle> -o <file>",
		Short: "Render a result bundle as a PDF",
		Long: `Render a report bundle as a PDF. The bundle file holds either one
resultado/analisis pair or a conjuntos list of pairs.

Example bundle:
  resultado:
    satisfaccion_general:
      promedio: 4.2
  analisis: |
    Overall satisfaction remains high across programs.`,
		RunE: runReportPDF,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the report bundle file")
	cmd.Flags().StringP("output", "o", "report.pdf", "Destination PDF file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runReportPDF(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	output, _ := cmd.Flags().GetString("output")

	var bundle api.ReportBundle
	if err := readResourceFile(file, &bundle); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	body, err := rt.Reports.GeneratePDF(cmd.Context(), bundle)
	if err != nil {
		return err
	}
	defer body.Close()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", output, err)
	}
	defer out.Close()

	n, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("report download failed: %w", err)
	}

	rt.Audit.Create(fmt.Sprintf("Report generated: %s", output), nil)

	if jsonOutput {
		printJSON(map[string]any{"file": output, "bytes": n})
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Wrote %s (%d bytes)\n", output, n)
	return nil
}
