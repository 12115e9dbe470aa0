// Package importer turns CSV exports from the registration form into
// participants: values are normalized to strings and rows are deduplicated
// by email against the current roster.
package importer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/thecola13/team-maker/internal/roster"
)

// RawRecord is one tabular row before cleaning. A nil value is a missing cell.
type RawRecord map[string]any

// Normalize converts every value of raw to a string. Missing and NaN values
// become "". Column names are kept as they are.
func Normalize(raw RawRecord) roster.Participant {
	clean := make(roster.Participant, len(raw))
	for column, value := range raw {
		clean[column] = stringValue(value)
	}
	return clean
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64, bits int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, bits)
}
