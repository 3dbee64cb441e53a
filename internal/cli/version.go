package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set during build)
var (
	version = "dev"
	commit  = "none"
)

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dsa-nonce %s (%s)\n", version, commit)
	},
}
