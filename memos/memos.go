package memos

import (
	"fmt"
	"strings"
	"time"

	"github.com/decodahealth/patient-record/errors"
	"github.com/decodahealth/patient-record/record"
)

var ErrEmptyNote = fmt.Errorf("%w: memo note is empty", errors.BadRequest)

// New synthesizes an audit memo. Every reconciling command that materially
// changes billing or scheduling state records exactly one of these.
func New(patient record.PersonRef, creator record.PersonRef, note string, now time.Time) record.Memo {
	return record.Memo{
		Id:          record.NewMemoId(),
		Patient:     patient,
		Note:        note,
		Creator:     creator,
		CreatedDate: now,
		UpdatedDate: now,
	}
}

// Prepend returns a new list with the memo first. Memos are ordered most
// recent first and are never edited or removed.
func Prepend(memos []record.Memo, memo record.Memo) []record.Memo {
	return append([]record.Memo{memo}, memos...)
}

// Add appends a free-form memo to the record. The note is trimmed and must
// not be blank. No other state changes.
func Add(rec record.PatientRecord, note string, actor record.PersonRef, now time.Time) (record.PatientRecord, error) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return record.PatientRecord{}, ErrEmptyNote
	}

	updated := rec.Clone()
	updated.Memos = Prepend(updated.Memos, New(updated.PatientRef(), actor, trimmed, now))
	return updated, nil
}
