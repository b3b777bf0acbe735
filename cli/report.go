package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"otconsole/client"
)

var (
	reportFrom   string
	reportTo     string
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show or download the monthly overtime report",
	Long: `report prints per-employee monthly totals for a date range. With
--format csv or xlsx the export is written to --output instead.
Without --from and --to the console reports the current month.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "First day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Last day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, xlsx")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Export file (default OT_Report_<from>_to_<to>.<format>)")
}

func runReport(cmd *cobra.Command, args []string) error {
	c, session, err := connect()
	if err != nil {
		return err
	}

	switch reportFormat {
	case "md":
		m, err := c.MonthlyReport(cmd.Context(), session, reportFrom, reportTo)
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), m)
		return nil
	case "csv", "xlsx":
	default:
		return fmt.Errorf("unknown format %q (use md, csv or xlsx)", reportFormat)
	}

	path := reportOutput
	if path == "" {
		path = fmt.Sprintf("OT_Report_%s_to_%s.%s", orDefault(reportFrom, "month"), orDefault(reportTo, "end"), reportFormat)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.ExportReport(cmd.Context(), session, reportFrom, reportTo, reportFormat, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func printReport(w io.Writer, m *client.MonthlyReport) {
	fmt.Fprintf(w, "## Overtime %s to %s\n\n", m.From, m.To)
	if len(m.Groups) == 0 {
		fmt.Fprintln(w, "No entries.")
		return
	}
	fmt.Fprintln(w, "| Employee | Name | Month | Normal | Double | Triple | Confirmed | Night | Entries |")
	fmt.Fprintln(w, "|----------|------|-------|-------:|-------:|-------:|----------:|------:|--------:|")
	for _, g := range m.Groups {
		fmt.Fprintf(w, "| %s | %s | %04d-%02d | %.2f | %.2f | %.2f | %.2f | %d | %d |\n",
			g.EmployeeNo, g.EmployeeName, g.Year, g.Month,
			g.Normal, g.Double, g.Triple, g.Confirmed, g.NightShifts, g.EntryCount)
	}
	s := m.Summary
	fmt.Fprintf(w, "| **Total** | | | %.2f | %.2f | %.2f | %.2f | %d | %d |\n",
		s.Normal, s.Double, s.Triple, s.Confirmed, s.NightShifts, s.EntryCount)
}
