package store

import (
	goerrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/decodahealth/patient-record/errors"
)

var ErrRecordNotFound = fmt.Errorf("%w: patient record not found", errors.NotFound)

func IsDuplicateKeyError(err error) bool {
	for ; err != nil; err = goerrors.Unwrap(err) {
		if e, ok := err.(mongo.ServerError); ok {
			return e.HasErrorCode(11000) || e.HasErrorCode(11001) || e.HasErrorCode(12582) ||
				e.HasErrorCodeWithMessage(16460, " E11000 ")
		}
	}
	return false
}
