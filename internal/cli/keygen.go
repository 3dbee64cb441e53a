package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// keygenCmd derives a key pair under stored domain parameters
var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a DSA key pair",
	Long:  `Derive a private/public key pair under a stored domain-parameter file`,
	Run: func(cmd *cobra.Command, args []string) {
		paramsFile, _ := cmd.Flags().GetString("params")
		out, _ := cmd.Flags().GetString("out")

		params, err := loadParams(paramsFile)
		if err != nil {
			handleError(err)
		}

		kp, err := newClient().GenerateKeyPair(params)
		if err != nil {
			handleError(err)
		}

		fmt.Printf("Key pair:\n")
		fmt.Printf("  x (private) = %s\n", kp.X)
		fmt.Printf("  y (public)  = %s\n", kp.Y)

		if out != "" {
			if err := writeJSON(out, kp); err != nil {
				handleError(err)
			}
			fmt.Printf("Written to %s\n", out)
		}
	},
}

func init() {
	keygenCmd.Flags().String("params", "params.json", "domain-parameter file")
	keygenCmd.Flags().String("out", "", "write the key pair to this JSON file")
}
