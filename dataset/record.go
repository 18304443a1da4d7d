package dataset

import (
	"strconv"
	"time"
)

// Unknown is the bucket every blank or unrecognized categorical value lands
// in. Records are never dropped for having one; charts that want the bucket
// out exclude it through their filter.
const Unknown = "Unknown"

// AllAges marks rows carrying a jurisdiction-wide total rather than a single
// age bucket. Kept on load, excluded by charts that break results down by age.
const AllAges = "All ages"

// Jurisdictions lists the 8 Australian state and territory codes.
var Jurisdictions = []string{"ACT", "NSW", "NT", "QLD", "SA", "TAS", "VIC", "WA"}

func ValidJurisdiction(code string) bool {
	for _, j := range Jurisdictions {
		if j == code {
			return true
		}
	}
	return false
}

// Record is one row of an enforcement extract. Immutable once loaded.
type Record struct {
	Year            int    `validate:"required,gte=1970,lte=2100"`
	Jurisdiction    string `validate:"required"`
	Metric          string `validate:"required"`
	AgeGroup        string
	DetectionMethod string

	Count   float64 `validate:"gte=0"`
	Fines   float64 `validate:"gte=0"`
	Arrests float64 `validate:"gte=0"`
	Charges float64 `validate:"gte=0"`

	Start time.Time
	End   time.Time
}

// Field names usable as group keys and value selectors.
const (
	FieldYear      = "YEAR"
	FieldJuris     = "JURISDICTION"
	FieldMetric    = "METRIC"
	FieldAge       = "AGE_GROUP"
	FieldDetection = "DETECTION_METHOD"
	FieldCount     = "COUNT"
	FieldFines     = "FINES"
	FieldArrests   = "ARRESTS"
	FieldCharges   = "CHARGES"
	FieldStart     = "START_DATE"
	FieldEnd       = "END_DATE"
)

// Key returns the categorical value of a record for the given group field.
func (r Record) Key(field string) string {
	switch field {
	case FieldYear:
		return strconv.Itoa(r.Year)
	case FieldJuris:
		return r.Jurisdiction
	case FieldMetric:
		return r.Metric
	case FieldAge:
		return r.AgeGroup
	case FieldDetection:
		return r.DetectionMethod
	default:
		return ""
	}
}

// Value returns the numeric value of a record for the given count field.
func (r Record) Value(field string) float64 {
	switch field {
	case FieldCount:
		return r.Count
	case FieldFines:
		return r.Fines
	case FieldArrests:
		return r.Arrests
	case FieldCharges:
		return r.Charges
	default:
		return 0
	}
}
