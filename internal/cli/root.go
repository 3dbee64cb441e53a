package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dsa",
	Short: "dsa-nonce CLI - toy DSA signing and nonce-misuse demonstrations",
	Long: `dsa-nonce is a pedagogical DSA toolkit: it generates toy-sized
domain parameters and key pairs, signs and verifies messages while showing
every intermediate value, and demonstrates how reusing a signing nonce
across two messages surrenders the private key.

Nothing here is production cryptography. The parameter sizes are
deliberately far too small and the implementation is not hardened
against timing or side channels; that is the point of the tool.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			if l, err := zap.NewDevelopment(); err == nil {
				logger = l
			}
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"log generation and recovery progress")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(recoverCmd)
}

// newClient returns a client wired to the CLI's logger.
func newClient() *dsa.Client {
	return dsa.NewClient().WithLogger(logger)
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
