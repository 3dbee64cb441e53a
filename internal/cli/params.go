package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

// paramsCmd generates domain parameters
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Generate DSA domain parameters",
	Long:  `Generate a (p, q, g) domain-parameter triple and print or store it as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		qBits, _ := cmd.Flags().GetInt("qbits")
		pBits, _ := cmd.Flags().GetInt("pbits")
		rounds, _ := cmd.Flags().GetInt("rounds")
		attempts, _ := cmd.Flags().GetInt("attempts")
		out, _ := cmd.Flags().GetString("out")

		client := newClient().WithGenConfig(dsa.GenConfig{
			QBits:       qBits,
			PBits:       pBits,
			MRRounds:    rounds,
			MaxAttempts: attempts,
		})

		params, err := client.GenerateParameters(context.Background())
		if err != nil {
			handleError(err)
		}

		fmt.Printf("Domain parameters:\n")
		fmt.Printf("  p = %s\n", params.P)
		fmt.Printf("  q = %s\n", params.Q)
		fmt.Printf("  g = %s\n", params.G)

		if out != "" {
			if err := writeJSON(out, params); err != nil {
				handleError(err)
			}
			fmt.Printf("Written to %s\n", out)
		}
	},
}

func init() {
	paramsCmd.Flags().Int("qbits", 0, "bit length of q (default 32)")
	paramsCmd.Flags().Int("pbits", 0, "target bit length of p (default 64)")
	paramsCmd.Flags().Int("rounds", 0, "Miller-Rabin rounds per primality test (default 20)")
	paramsCmd.Flags().Int("attempts", 0, "attempt cap per candidate search (default 4096)")
	paramsCmd.Flags().String("out", "", "write the parameters to this JSON file")
}
