package cli

import (
	"context"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

// recoverCmd runs the nonce-reuse attack on a signature transcript
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a private key from a reused-nonce transcript",
	Long: `Scan a signature file (JSON or CSV) for two signatures sharing an r
value and recover the private key and nonce from them. With --pub, the
recovered key is additionally checked against the public key.`,
	Run: func(cmd *cobra.Command, args []string) {
		paramsFile, _ := cmd.Flags().GetString("params")
		sigFile, _ := cmd.Flags().GetString("signatures")
		format, _ := cmd.Flags().GetString("format")
		pubStr, _ := cmd.Flags().GetString("pub")

		params, err := loadParams(paramsFile)
		if err != nil {
			handleError(err)
		}

		var y *big.Int
		if pubStr != "" {
			if y, err = dsa.ParseBigInt(pubStr); err != nil {
				handleError(fmt.Errorf("invalid --pub: %w", err))
			}
		}

		var parser dsa.SignatureParser
		switch format {
		case "json":
			parser = &dsa.JSONParser{}
		case "csv":
			parser = &dsa.CSVParser{}
		default:
			handleError(fmt.Errorf("unknown format %q (want json or csv)", format))
		}

		client := newClient().WithParser(parser)
		result, err := client.RecoverKeyFromFile(context.Background(), sigFile, params, y)
		if err != nil {
			handleError(err)
		}

		fmt.Printf("Recovered from reused nonce:\n")
		fmt.Printf("  x (private key) = %s\n", result.PrivateKey)
		fmt.Printf("  k (nonce)       = %s\n", result.Nonce)
		if result.Verified {
			fmt.Println("  recovered key matches the public key")
		}
	},
}

func init() {
	recoverCmd.Flags().String("params", "params.json", "domain-parameter file")
	recoverCmd.Flags().String("signatures", "", "signature transcript file")
	recoverCmd.Flags().String("format", "json", "transcript format (json or csv)")
	recoverCmd.Flags().String("pub", "", "public key y to check the recovered key against")
	_ = recoverCmd.MarkFlagRequired("signatures")
}
