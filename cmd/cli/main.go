package main

import (
	"fmt"
	"os"

	"github.com/mpetrun5/hobbylog/cmd/cli/auth"
	"github.com/mpetrun5/hobbylog/cmd/cli/hobbies"
	"github.com/mpetrun5/hobbylog/cmd/cli/root"
	"github.com/mpetrun5/hobbylog/cmd/cli/sessions"
)

func main() {
	auth.InitAuth(root.RootCmd)
	hobbies.InitHobbies(root.RootCmd)
	sessions.InitSessions(root.RootCmd)

	if err := root.RootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
