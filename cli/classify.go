package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"otconsole/overtime"
)

var (
	classifyDate     string
	classifyShift    string
	classifyIn       string
	classifyOut      string
	classifyTriple   []string
	classifyTimezone string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify an overtime span locally",
	Long: `classify runs the overtime rules on one span without contacting the
console. Triple-OT dates are passed with --triple.`,
	Example: "  otctl classify --date 2025-06-01 --shift B --in 22:00 --out 02:00",
	Args:    cobra.NoArgs,
	RunE:    runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyDate, "date", "", "Entry date (YYYY-MM-DD)")
	classifyCmd.Flags().StringVar(&classifyShift, "shift", "A", "Shift code: A or B")
	classifyCmd.Flags().StringVar(&classifyIn, "in", "", "Clock-in time (HH:MM)")
	classifyCmd.Flags().StringVar(&classifyOut, "out", "", "Clock-out time (HH:MM)")
	classifyCmd.Flags().StringSliceVar(&classifyTriple, "triple", nil, "Triple-OT dates (YYYY-MM-DD), repeatable")
	classifyCmd.Flags().StringVar(&classifyTimezone, "tz", "Local", "Time zone the date and times are read in")
	_ = classifyCmd.MarkFlagRequired("date")
	_ = classifyCmd.MarkFlagRequired("in")
	_ = classifyCmd.MarkFlagRequired("out")
}

func runClassify(cmd *cobra.Command, args []string) error {
	loc, err := time.LoadLocation(classifyTimezone)
	if err != nil {
		return fmt.Errorf("invalid --tz: %w", err)
	}

	span, shift, err := overtime.Prepare(overtime.Draft{
		Date:     classifyDate,
		Shift:    classifyShift,
		ClockIn:  classifyIn,
		ClockOut: classifyOut,
	}, loc)
	if err != nil {
		return err
	}

	res := overtime.ClassifySpan(span, shift, overtime.NewDateSet(classifyTriple...))
	printClassification(cmd.OutOrStdout(), span, shift, res)
	return nil
}

func printClassification(w io.Writer, span overtime.Span, shift overtime.Shift, res overtime.Result) {
	night := "no"
	if res.NightShift {
		night = "yes"
	}
	fmt.Fprintf(w, "Shift:   %s\n", shift)
	fmt.Fprintf(w, "In:      %s\n", span.In.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Out:     %s\n", span.Out.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Night:   %s\n", night)
	fmt.Fprintf(w, "Normal:  %s\n", res.Normal.StringFixed(2))
	fmt.Fprintf(w, "Double:  %s\n", res.Double.StringFixed(2))
	fmt.Fprintf(w, "Triple:  %s\n", res.Triple.StringFixed(2))
	fmt.Fprintf(w, "Bucket:  %s\n", res.Bucket())
}
