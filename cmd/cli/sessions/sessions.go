package sessions

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpetrun5/hobbylog/cmd/cli/client"
	"github.com/mpetrun5/hobbylog/cmd/cli/output"
)

type session struct {
	ID       int     `json:"id"`
	Duration int     `json:"duration"`
	Notes    *string `json:"notes"`
	Date     string  `json:"date"`
}

// ==========================
// Init Sessions
// ==========================
func InitSessions(rootCmd *cobra.Command) {

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Log and list sessions",
	}

	sessionsCmd.AddCommand(
		listSessionsCmd(),
		logSessionCmd(),
	)

	rootCmd.AddCommand(sessionsCmd)
}

// ==========================
// LIST
// ==========================
func listSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [hobby-id]",
		Short: "List sessions for a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			var out struct {
				Sessions []session `json:"sessions"`
			}
			if err := client.Call("GET", "/api/hobbies/"+args[0]+"/sessions", token, nil, &out); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(out.Sessions))
			for _, s := range out.Sessions {
				notes := ""
				if s.Notes != nil {
					notes = *s.Notes
				}
				rows = append(rows, []interface{}{s.ID, s.Date, fmt.Sprintf("%dm", s.Duration), notes})
			}
			output.RenderTable([]string{"ID", "DATE", "DURATION", "NOTES"}, rows)
			return nil
		},
	}
}

// ==========================
// LOG
// ==========================
func logSessionCmd() *cobra.Command {

	var duration int
	var date string
	var notes string

	cmd := &cobra.Command{
		Use:   "log [hobby-id]",
		Short: "Log a session against a hobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			payload := map[string]interface{}{
				"duration": duration,
				"date":     date,
			}
			if notes != "" {
				payload["notes"] = notes
			}

			var out struct {
				Session session `json:"session"`
			}
			if err := client.Call("POST", "/api/hobbies/"+args[0]+"/sessions", token, payload, &out); err != nil {
				return err
			}

			fmt.Printf("Logged %dm on %s (session id %d)\n", out.Session.Duration, out.Session.Date, out.Session.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")

	return cmd
}
