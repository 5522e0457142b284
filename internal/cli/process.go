package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/internal/surveyapi"
	"github.com/miradorhq/mirador/pkg/api"
)

// newProcessCmd creates and returns a new process command
func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Manage survey-loading processes and their files",
	}
	cmd.AddCommand(newProcessListCmd())
	cmd.AddCommand(newProcessGetCmd())
	cmd.AddCommand(newProcessCreateCmd())
	cmd.AddCommand(newProcessUpdateCmd())
	cmd.AddCommand(newProcessFilesCmd())
	cmd.AddCommand(newProcessUploadCmd())
	cmd.AddCommand(newProcessDownloadCmd())
	return cmd
}

func newProcessListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all processes",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			processes, err := rt.Process.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(processes)
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATE\tRESPONSIBLE\tUNIT")
			for _, p := range processes {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.ProcessName, p.Estado, p.Encargado, p.Unidad)
			}
			return w.Flush()
		},
	}
}

func newProcessGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid process id %q", args[0])
			}
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			process, err := rt.Process.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			rt.Audit.ProjectView(process.ProcessName, process.SchoolID)
			printJSON(process)
			return nil
		},
	}
}

func newProcessCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name> -f <datafile>",
		Short: "Create a process with its initial data file",
		Long: `Create a survey-loading process. The data file (CSV or XLSX) is
uploaded in the same request.

Example:
  mirador process create "Egresados 2026" -f egresados.xlsx --school 2 --encargado 7`,
		Args: cobra.ExactArgs(1),
		RunE: runProcessCreate,
	}
	cmd.Flags().StringP("file", "f", "", "CSV or XLSX data file to attach")
	cmd.Flags().Int("school", 0, "School id that owns the process")
	cmd.Flags().Int("encargado", 0, "User id responsible for the process")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("school")
	return cmd
}

func runProcessCreate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	schoolID, _ := cmd.Flags().GetInt("school")
	encargadoID, _ := cmd.Flags().GetInt("encargado")

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", file, err)
	}
	defer f.Close()

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	process, err := rt.Process.Create(cmd.Context(), surveyapi.ProcessCreate{
		ProcessName: args[0],
		SchoolID:    schoolID,
		EncargadoID: encargadoID,
		Filename:    filepath.Base(file),
		File:        f,
	})
	if err != nil {
		return err
	}

	rt.Audit.ProcessCreate(process.ProcessName, process.SchoolID)

	if jsonOutput {
		printJSON(process)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Created process %s (id %d)\n", process.ProcessName, process.ID)
	return nil
}

func newProcessUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id> -f <file>",
		Short: "Update a process from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcessUpdate,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the process definition file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runProcessUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid process id %q", args[0])
	}
	file, _ := cmd.Flags().GetString("file")

	var data api.ProcessUpdate
	if err := readResourceFile(file, &data); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	process, err := rt.Process.Update(cmd.Context(), id, data)
	if err != nil {
		return err
	}

	rt.Audit.ProcessUpdate(process.ProcessName, process.SchoolID)

	if jsonOutput {
		printJSON(process)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Updated process %s\n", process.ProcessName)
	return nil
}

func newProcessFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files <id>",
		Short: "List files stored for a process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid process id %q", args[0])
			}
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			files, err := rt.Process.Files(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(files)
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tSIZE")
			for _, f := range files {
				fmt.Fprintf(w, "%s\t%s\t%d\n", f.Name, f.Path, f.Size)
			}
			return w.Flush()
		},
	}
}

func newProcessUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload -f <datafile>",
		Short: "Upload a CSV or XLSX data file",
		RunE:  runProcessUpload,
	}
	cmd.Flags().StringP("file", "f", "", "CSV or XLSX data file to upload")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runProcessUpload(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", file, err)
	}
	defer f.Close()

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	name := filepath.Base(file)
	if err := rt.Process.UploadFile(cmd.Context(), name, f); err != nil {
		return err
	}

	rt.Audit.Create(fmt.Sprintf("File uploaded: %s", name), nil)

	if jsonOutput {
		printJSON(map[string]string{"status": "uploaded", "file": name})
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Uploaded %s\n", name)
	return nil
}

func newProcessDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <path>",
		Short: "Download a stored file by its object path",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcessDownload,
	}
	cmd.Flags().StringP("output", "o", "", "Destination file (defaults to the object's base name)")
	return cmd
}

func runProcessDownload(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Base(args[0])
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}

	body, err := rt.Process.DownloadFile(cmd.Context(), args[0])
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
		return fmt.Errorf("download failed: %w", err)
	}

	rt.Audit.Read(fmt.Sprintf("File downloaded: %s", filepath.Base(args[0])), nil)

	if jsonOutput {
		printJSON(map[string]any{"file": output, "bytes": n})
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Wrote %s (%d bytes)\n", output, n)
	return nil
}
