package command

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/decodahealth/patient-record/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo patient record",
	Long:  "The seed command upserts the demo aggregate used for local development",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(seedRecord) },
}

func seedRecord(repo store.Repository) error {
	rec := store.SeedRecord(time.Now())
	if err := repo.Upsert(context.TODO(), rec); err != nil {
		return err
	}

	fmt.Printf("Seeded record for patient %s (%s %s)\n",
		rec.Patient.Id, rec.Patient.FirstName, rec.Patient.LastName)
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
