package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decodahealth/patient-record/session"
)

var showCmd = &cobra.Command{
	Use:   "show <patientId>",
	Short: "Print a patient record",
	Long:  "The show command loads an aggregate, settles any due scheduled payments and prints it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(func(sessions session.Manager) error {
			return showRecord(sessions, args[0])
		})
	},
}

func showRecord(sessions session.Manager, patientId string) error {
	snapshot, err := sessions.Load(context.TODO(), patientId)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(snapshot.Record, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(encoded))
	return nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
