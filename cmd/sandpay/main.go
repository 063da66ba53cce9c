package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sandpay-io/sandpay/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sandpay",
		Short: "SandPay - a simulated payment gateway",
		Long:  `SandPay simulates a payment gateway: merchants create orders, process sandbox payments, and receive signed webhook notifications on state changes.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
