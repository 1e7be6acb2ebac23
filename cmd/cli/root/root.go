package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the entry point all subcommands hang off.
var RootCmd = &cobra.Command{
	Use:   "hobbylog",
	Short: "Hobbylog CLI",
	Long:  "Command line interface for interacting with the Hobbylog API",
}
