package hobbies

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpetrun5/hobbylog/cmd/cli/client"
	"github.com/mpetrun5/hobbylog/cmd/cli/output"
)

type hobby struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Description    *string `json:"description"`
	Category       *string `json:"category"`
	TotalTimeSpent int     `json:"total_time_spent"`
	SessionCount   int     `json:"session_count"`
}

// ==========================
// Init Hobbies
// ==========================
func InitHobbies(rootCmd *cobra.Command) {

	hobbiesCmd := &cobra.Command{
		Use:   "hobbies",
		Short: "Manage hobbies",
	}

	hobbiesCmd.AddCommand(
		listHobbiesCmd(),
		createHobbyCmd(),
		updateHobbyCmd(),
		deleteHobbyCmd(),
	)

	rootCmd.AddCommand(hobbiesCmd)
}

// ==========================
// LIST
// ==========================
func listHobbiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List hobbies with time spent",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			var out struct {
				Hobbies []hobby `json:"hobbies"`
			}
			if err := client.Call("GET", "/api/hobbies", token, nil, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Hobbies))
			for _, h := range out.Hobbies {
				category := ""
				if h.Category != nil {
					category = *h.Category
				}
				rows = append(rows, []interface{}{
					h.ID, h.Name, category, h.SessionCount, fmt.Sprintf("%dm", h.TotalTimeSpent),
				})
			}
			output.RenderTable([]string{"ID", "NAME", "CATEGORY", "SESSIONS", "TIME SPENT"}, rows)
			return nil
		},
	}
}

// ==========================
// CREATE
// ==========================
func createHobbyCmd() *cobra.Command {

	var name string
	var description string
	var category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a hobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			if category != "" {
				payload["category"] = category
			}

			var out struct {
				Hobby hobby `json:"hobby"`
			}
			if err := client.Call("POST", "/api/hobbies", token, payload, &out); err != nil {
				return err
			}

			fmt.Printf("Created hobby %q (id %d)\n", out.Hobby.Name, out.Hobby.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "hobby name")
	cmd.Flags().StringVar(&description, "description", "", "hobby description")
	cmd.Flags().StringVar(&category, "category", "", "hobby category")

	return cmd
}

// ==========================
// UPDATE
// ==========================
func updateHobbyCmd() *cobra.Command {

	var name string
	var description string
	var category string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			payload := map[string]interface{}{"name": name}
			if description != "" {
				payload["description"] = description
			}
			if category != "" {
				payload["category"] = category
			}

			var out struct {
				Hobby hobby `json:"hobby"`
			}
			if err := client.Call("PUT", "/api/hobbies/"+args[0], token, payload, &out); err != nil {
				return err
			}

			fmt.Printf("Updated hobby %q (id %d)\n", out.Hobby.Name, out.Hobby.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "hobby name")
	cmd.Flags().StringVar(&description, "description", "", "hobby description")
	cmd.Flags().StringVar(&category, "category", "", "hobby category")

	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteHobbyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a hobby and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			if err := client.Call("DELETE", "/api/hobbies/"+args[0], token, nil, nil); err != nil {
				return err
			}

			fmt.Println("Hobby deleted")
			return nil
		},
	}
}
