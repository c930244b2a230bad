package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decodahealth/patient-record/session"
)

var autopayCmd = &cobra.Command{
	Use:   "autopay <patientId>",
	Short: "Settle due scheduled payments",
	Long:  "The autopay command runs the scheduled payment processor over a patient's record and persists the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(sessions session.Manager) error {
			return runAutopay(sessions, args[0])
		})
	},
}

func runAutopay(sessions session.Manager, patientId string) error {
	snapshot, err := sessions.Refresh(context.TODO(), patientId)
	if err != nil {
		return err
	}

	if snapshot.Record.LastProcessed != nil {
		fmt.Printf("Last processed at %s\n", snapshot.Record.LastProcessed.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("No scheduled payments were due")
	}
	fmt.Printf("Total outstanding: $%.2f\n", snapshot.Record.TotalOutstanding())
	return nil
}

func init() {
	rootCmd.AddCommand(autopayCmd)
}
