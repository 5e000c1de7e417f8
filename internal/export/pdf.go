package export

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// validatePDF rejects converter output that is not a well-formed PDF. The
// converter runs an external browser, so its output is checked before any
// file is created at the destination.
func validatePDF(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("converter produced no output")
	}
	if err := api.Validate(bytes.NewReader(data), model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("converter produced invalid pdf: %w", err)
	}
	return nil
}
