package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "alx",
	Short: "ALX Console is the operator console for the ALX billing platform",
	Long: `A browser-facing console for the ALX electricity billing platform:
role-specific dashboards, customer/bill/payment/meter management, and the
login/OTP session flow against the platform's REST API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
