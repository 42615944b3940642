package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var qrCmd = &cobra.Command{
	Use:   "qr",
	Short: "Manage pot QR code images",
}

var qrEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Generate QR images for pots that are missing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := tracker.EnsureQRImages(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Checked %d pots\n", result.Checked)
		if len(result.Generated) > 0 {
			fmt.Fprintln(out, color.GreenString("✓ Generated %d QR images", len(result.Generated)))
			for _, token := range result.Generated {
				fmt.Fprintf(out, "  %s\n", token)
			}
		} else {
			fmt.Fprintln(out, color.GreenString("✓ All QR images present"))
		}

		if len(result.Failed) > 0 {
			fmt.Fprintln(out, color.YellowString("⚠ Failed to generate %d QR images", len(result.Failed)))
			for _, token := range result.Failed {
				fmt.Fprintf(out, "  %s\n", token)
			}
			return fmt.Errorf("%d qr images could not be generated", len(result.Failed))
		}
		return nil
	},
}

func init() {
	qrCmd.AddCommand(qrEnsureCmd)
	rootCmd.AddCommand(qrCmd)
}
