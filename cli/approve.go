package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"otconsole/models"
)

var approveStage string

var approveCmd = &cobra.Command{
	Use:   "approve ID...",
	Short: "Move overtime entries to an approval stage",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runApprove,
}

func init() {
	approveCmd.Flags().StringVar(&approveStage, "stage", string(models.StageApproved), "Target stage: pending, approved(production) or final_approved(hr)")
}

func runApprove(cmd *cobra.Command, args []string) error {
	stage, err := models.ParseStage(approveStage)
	if err != nil {
		return err
	}
	ids := make([]uint, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseUint(a, 10, 0)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", a)
		}
		ids = append(ids, uint(id))
	}

	c, session, err := connect()
	if err != nil {
		return err
	}
	results, err := c.SetApproval(cmd.Context(), session, ids, stage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, r := range results {
		if r.OK {
			fmt.Fprintf(out, "%d: %s\n", r.ID, r.Stage)
			continue
		}
		failed++
		fmt.Fprintf(out, "%d: failed: %s\n", r.ID, r.Error)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries not updated", failed, len(results))
	}
	return nil
}
