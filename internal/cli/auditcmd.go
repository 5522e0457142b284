package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
	"github.com/miradorhq/mirador/pkg/types"
)

// newAuditCmd creates and returns a new audit command
func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Read and write the audit trail",
	}
	cmd.AddCommand(newAuditListCmd())
	cmd.AddCommand(newAuditByUserCmd())
	cmd.AddCommand(newAuditLogCmd())
	cmd.AddCommand(newAuditActionTypesCmd())
	return cmd
}

func printAuditRecords(records []api.AuditRecord) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tACTION\tRESPONSIBLE\tDESCRIPTION")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Action, r.Responsible, r.Description)
	}
	return w.Flush()
}

func newAuditListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all audit records",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			records, err := rt.Audits.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(records)
				return nil
			}
			return printAuditRecords(records)
		},
	}
}

func newAuditByUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-user <id>",
		Short: "List audit records for one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			records, err := rt.Audits.ListByUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(records)
				return nil
			}
			return printAuditRecords(records)
		},
	}
}

func newAuditLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <action-type> <description>",
		Short: "Record an audit entry by action type name",
		Long: `Record an audit entry synchronously, by action type name.

Example:
  mirador audit log Review "Quarterly numbers checked" --school 2`,
		Args: cobra.ExactArgs(2),
		RunE: runAuditLog,
	}
	cmd.Flags().Int("school", 0, "School id to attribute the entry to")
	return cmd
}

func runAuditLog(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime()
	if err != nil {
		return err
	}

	entry := api.AuditLogByName{
		ActionTypeName: args[0],
		Description:    args[1],
	}
	if cmd.Flags().Changed("school") {
		school, _ := cmd.Flags().GetInt("school")
		entry.SchoolID = types.NullableInt64From(int64(school))
	}

	record, err := rt.Audits.LogByName(cmd.Context(), entry)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(record)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Recorded audit entry %d\n", record.ID)
	return nil
}

func newAuditActionTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action-types",
		Short: "List the action types the backend accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			actionTypes, err := rt.Audits.ActionTypes(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(actionTypes)
				return nil
			}
			for _, t := range actionTypes {
				fmt.Printf("%d\t%s\n", t.ID, t.Name)
			}
			return nil
		},
	}
}
