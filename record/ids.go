package record

import (
	"fmt"

	"github.com/google/uuid"
)

func NewPaymentId() string {
	return fmt.Sprintf("pmt_%s", uuid.NewString())
}

func NewAutoPaymentId() string {
	return fmt.Sprintf("auto_pmt_%s", uuid.NewString())
}

func NewMemoId() string {
	return fmt.Sprintf("qn_%s", uuid.NewString())
}
