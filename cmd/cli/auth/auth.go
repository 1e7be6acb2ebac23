package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpetrun5/hobbylog/cmd/cli/client"
	"github.com/mpetrun5/hobbylog/cmd/cli/config"
)

// InitAuth registers auth-related CLI commands on the root command.
func InitAuth(rootCmd *cobra.Command) {
	rootCmd.AddCommand(loginCmd(), logoutCmd(), whoamiCmd())
}

// loginCmd authenticates against the API and stores the token locally.
func loginCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Hobbylog API",
		Long:  "Authenticate with the Hobbylog API and store a token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("username is required")
			}

			var loginResp struct {
				Token string `json:"token"`
			}
			err := client.Call("POST", "/api/auth/login", "",
				map[string]string{"username": username, "password": password}, &loginResp)
			if err != nil {
				return fmt.Errorf("failed to login: %w", err)
			}
			if loginResp.Token == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(loginResp.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Login successful. Token stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to authenticate as")
	cmd.Flags().StringVar(&password, "password", "", "Password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := client.AuthToken()
			if err != nil {
				return err
			}

			var out struct {
				User struct {
					ID       int    `json:"id"`
					Username string `json:"username"`
				} `json:"user"`
			}
			if err := client.Call("GET", "/api/auth/me", token, nil, &out); err != nil {
				return err
			}

			fmt.Printf("%s (id %d)\n", out.User.Username, out.User.ID)
			return nil
		},
	}
}
