package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mahdiidarabi/dsa-nonce/pkg/dsa"
)

// signCmd signs a message, optionally with a fixed nonce
var signCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Sign a message",
	Long: `Sign a message under a stored key, printing the signature and every
intermediate value. Passing --nonce fixes the nonce, which is how the
reused-nonce transcripts the recover command attacks are produced.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		message := args[0]
		paramsFile, _ := cmd.Flags().GetString("params")
		keyFile, _ := cmd.Flags().GetString("key")
		nonceStr, _ := cmd.Flags().GetString("nonce")

		params, err := loadParams(paramsFile)
		if err != nil {
			handleError(err)
		}
		kp, err := loadKeyPair(keyFile)
		if err != nil {
			handleError(err)
		}

		var opts dsa.SignOptions
		if nonceStr != "" {
			nonce, err := dsa.ParseBigInt(nonceStr)
			if err != nil {
				handleError(fmt.Errorf("invalid --nonce: %w", err))
			}
			opts.Nonce = nonce
		}

		res, err := newClient().Sign([]byte(message), params, kp.X, opts)
		if err != nil {
			handleError(err)
		}

		fmt.Printf("Signature:\n")
		fmt.Printf("  r = %s\n", res.Signature.R)
		fmt.Printf("  s = %s\n", res.Signature.S)
		fmt.Printf("Intermediate values:\n")
		fmt.Printf("  h (digest mod q) = %s\n", res.Digest)
		fmt.Printf("  k (nonce)        = %s\n", res.Nonce)
		fmt.Printf("  k^-1 mod q       = %s\n", res.NonceInv)
	},
}

func init() {
	signCmd.Flags().String("params", "params.json", "domain-parameter file")
	signCmd.Flags().String("key", "key.json", "key-pair file")
	signCmd.Flags().String("nonce", "", "fixed nonce (decimal or 0x-hex); omit for a random nonce")
}
