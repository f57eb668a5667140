package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKind = errors.New("invalid dataset kind")
	ErrNotCSV      = errors.New("only CSV files are accepted")
)

// SchemaValidationError reports that an uploaded CSV does not contain
// every required column for its dataset. The whole upload is rejected and
// the previously stored collection stays untouched.
type SchemaValidationError struct {
	Kind    Kind
	Missing []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("%s CSV is missing required columns: %s", e.Kind, strings.Join(e.Missing, ", "))
}
