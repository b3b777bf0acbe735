// Package cli implements otctl, the command-line companion of the overtime
// console.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:5000"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "otctl",
	Short: "Overtime console command-line client",
	Long: `otctl classifies overtime locally, submits entries in bulk,
downloads monthly reports and converts fingerprint scanner logs.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("OTCTL_SERVER"), "Console base URL (default from the saved session, then "+defaultServer+")")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(scannerCmd)
}
