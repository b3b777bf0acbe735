package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"otconsole/attendance"
	"otconsole/export"
)

var scannerOutput string

var scannerCmd = &cobra.Command{
	Use:   "scanner",
	Short: "Fingerprint scanner log tools",
}

var scannerConvertCmd = &cobra.Command{
	Use:   "convert LOGFILE",
	Short: "Sort a scanner log by employee and date into a spreadsheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runScannerConvert,
}

func init() {
	scannerConvertCmd.Flags().StringVarP(&scannerOutput, "output", "o", "Sorted_Attendance.xlsx", "Spreadsheet to write")
	scannerCmd.AddCommand(scannerConvertCmd)
}

func runScannerConvert(cmd *cobra.Command, args []string) error {
	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	punches, err := attendance.Convert(in)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out, err := os.Create(scannerOutput)
	if err != nil {
		return err
	}
	if err := export.PunchesXLSX(out, punches); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d punches to %s\n", len(punches), scannerOutput)
	return nil
}
