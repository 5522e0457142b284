package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/miradorhq/mirador/pkg/api"
)

// newUsersCmd creates and returns a new users command
func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage platform users",
	}
	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersCreateCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersSchoolsCmd())
	cmd.AddCommand(newUsersDropdownCmd())
	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			users, err := rt.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(users)
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range users {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive)
			}
			return w.Flush()
		},
	}
}

func newUsersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a user from a YAML or JSON file",
		Long: `Create a user from a definition file.

Example definition:
  username: jdoe
  email: jdoe@example.edu
  password: changeme
  role: user
  is_active: true
  school_id: 2`,
		RunE: runUsersCreate,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the user definition file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runUsersCreate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	var data api.UserCreate
	if err := readResourceFile(file, &data); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	user, err := rt.Users.Create(cmd.Context(), data)
	if err != nil {
		return err
	}

	rt.Audit.Create(fmt.Sprintf("User created: %s", user.Username), user.SchoolID)

	if jsonOutput {
		printJSON(user)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Created user %s (id %d)\n", user.Username, user.ID)
	return nil
}

func newUsersUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id> -f <file>",
		Short: "Update a user from a YAML or JSON file",
		Long: `Update a user from a definition file. Omitted fields are left
unchanged; in particular an empty password never overwrites the stored
credential.`,
		Args: cobra.ExactArgs(1),
		RunE: runUsersUpdate,
	}
	cmd.Flags().StringP("file", "f", "", "Path to the user definition file")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runUsersUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}
	file, _ := cmd.Flags().GetString("file")

	var data api.UserUpdate
	if err := readResourceFile(file, &data); err != nil {
		return err
	}

	rt, err := getRuntime()
	if err != nil {
		return err
	}
	user, err := rt.Users.Update(cmd.Context(), id, data)
	if err != nil {
		return err
	}

	rt.Audit.Update(fmt.Sprintf("User updated: %s", user.Username), user.SchoolID)

	if jsonOutput {
		printJSON(user)
		return nil
	}
	okLabel.Print("✓ ")
	fmt.Printf("Updated user %s\n", user.Username)
	return nil
}

func newUsersSchoolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schools",
		Short: "List schools available for user assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			schools, err := rt.Users.Schools(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(schools)
				return nil
			}
			for _, s := range schools {
				fmt.Printf("%d\t%s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}

func newUsersDropdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dropdown",
		Short: "List users in the reduced id/username form",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime()
			if err != nil {
				return err
			}
			options, err := rt.Users.Dropdown(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(options)
				return nil
			}
			for _, o := range options {
				fmt.Printf("%d\t%s\n", o.ID, o.Username)
			}
			return nil
		},
	}
}
