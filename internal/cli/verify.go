package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

// verifyCmd checks a signature against a message and public key
var verifyCmd = &cobra.Command{
	Use:   "verify <message>",
	Short: "Verify a signature",
	Long: `Check a signature against a message and public key, printing the
verification equations' intermediate values. A malformed or mismatched
signature is reported as invalid, not as an error.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := args[0]
		paramsFile, _ := cmd.Flags().GetString("params")
		keyFile, _ := cmd.Flags().GetString("key")
		pubStr, _ := cmd.Flags().GetString("pub")
		rStr, _ := cmd.Flags().GetString("r")
		sStr, _ := cmd.Flags().GetString("s")

		params, err := loadParams(paramsFile)
		if err != nil {
			handleError(err)
		}

		y, err := resolvePublicKey(pubStr, keyFile)
		if err != nil {
			handleError(err)
		}

		r, err := dsa.ParseBigInt(rStr)
		if err != nil {
			handleError(fmt.Errorf("invalid --r: %w", err))
		}
		s, err := dsa.ParseBigInt(sStr)
		if err != nil {
			handleError(fmt.Errorf("invalid --s: %w", err))
		}

		verdict := newClient().Verify([]byte(message), &dsa.Signature{R: r, S: s}, params, y)

		if verdict.Valid {
			fmt.Println("VALID:", verdict.Reason)
		} else {
			fmt.Println("INVALID:", verdict.Reason)
		}
		if verdict.W != nil {
			fmt.Printf("Intermediate values:\n")
			fmt.Printf("  w  = %s\n", verdict.W)
			fmt.Printf("  u1 = %s\n", verdict.U1)
			fmt.Printf("  u2 = %s\n", verdict.U2)
			fmt.Printf("  v  = %s\n", verdict.V)
			fmt.Printf("  r  = %s\n", verdict.R)
		}
	},
}

// resolvePublicKey takes --pub when given, otherwise the y from a key file.
func resolvePublicKey(pubStr, keyFile string) (*big.Int, error) {
	if pubStr != "" {
		return dsa.ParseBigInt(pubStr)
	}
	kp, err := loadKeyPair(keyFile)
	if err != nil {
		return nil, err
	}
	return kp.Y, nil
}

func init() {
	verifyCmd.Flags().String("params", "params.json", "domain-parameter file")
	verifyCmd.Flags().String("key", "key.json", "key-pair file (its y is used unless --pub is set)")
	verifyCmd.Flags().String("pub", "", "public key y (decimal or 0x-hex)")
	verifyCmd.Flags().String("r", "", "signature component r")
	verifyCmd.Flags().String("s", "", "signature component s")
	_ = verifyCmd.MarkFlagRequired("r")
	_ = verifyCmd.MarkFlagRequired("s")
}
