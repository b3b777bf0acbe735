package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"otconsole/client"
)

var submitConcurrency int

var submitCmd = &cobra.Command{
	Use:   "submit FILE.csv",
	Short: "Submit overtime entries from a CSV file",
	Long: `submit creates one overtime entry per CSV row. The header row names the
columns: employee_no, date, shift, inTime, outTime, reason and client_ref.
employee_no, date, inTime and outTime are required.

Every row is attempted. The command exits non-zero when any row fails and
lists the failed rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().IntVar(&submitConcurrency, "concurrency", client.DefaultConcurrency, "Number of entries sent at once")
}

var requiredColumns = []string{"employee_no", "date", "inTime", "outTime"}

// readEntries parses a CSV with a header row into entry inputs.
func readEntries(r io.Reader) ([]client.EntryInput, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file")
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var entries []client.EntryInput
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		entries = append(entries, client.EntryInput{
			EmployeeNo: field("employee_no"),
			Date:       field("date"),
			Shift:      field("shift"),
			InTime:     field("inTime"),
			OutTime:    field("outTime"),
			Reason:     field("reason"),
			ClientRef:  field("client_ref"),
		})
	}
	return entries, nil
}

func runSubmit(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := readEntries(f)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No entries to submit.")
		return nil
	}

	c, session, err := connect()
	if err != nil {
		return err
	}

	results := c.Submit(cmd.Context(), session, entries, submitConcurrency)
	failed := client.Failed(results)
	reportSubmit(cmd.OutOrStdout(), results)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d entries failed", len(failed), len(results))
	}
	return nil
}

// reportSubmit prints one line per failed row (rows count from 2, after the
// header) and a closing tally.
func reportSubmit(w io.Writer, results []client.SubmitResult) {
	created := 0
	for i, r := range results {
		if r.Err == nil {
			created++
			continue
		}
		fmt.Fprintf(w, "row %d (%s %s): %v\n", i+2, r.Input.EmployeeNo, r.Input.Date, r.Err)
	}
	fmt.Fprintf(w, "Submitted %d of %d entries.\n", created, len(results))
}
