package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/record"
)

const recordsCollectionName = "patient_records"

// Repository persists whole aggregates. A document per patient, replaced
// wholesale on every write to match the copy-on-write semantics of the core.
type Repository interface {
	Get(ctx context.Context, patientId string) (record.PatientRecord, error)
	Upsert(ctx context.Context, rec record.PatientRecord) error
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(recordsCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patient.id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniquePatientRecord"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, patientId string) (record.PatientRecord, error) {
	selector := bson.M{
		"patient.id": patientId,
	}

	rec := record.PatientRecord{}
	err := r.collection.FindOne(ctx, selector).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return record.PatientRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, patientId)
	} else if err != nil {
		return record.PatientRecord{}, fmt.Errorf("error finding patient record: %w", err)
	}

	return rec, nil
}

func (r *repository) Upsert(ctx context.Context, rec record.PatientRecord) error {
	selector := bson.M{
		"patient.id": rec.Patient.Id,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, selector, rec, opts)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: concurrent insert for patient %s", errors.Conflict, rec.Patient.Id)
		}
		return fmt.Errorf("error upserting patient record: %w", err)
	}
	return nil
}
