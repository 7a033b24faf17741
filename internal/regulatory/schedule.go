// Package regulatory maps a medicine's schedule tag to the prescription
// particulars the law requires at sale time. The mapping is defined once
// here and reused by the sale validator and the retroactive audit checks.
package regulatory

import "strings"

// Schedule is the regulatory classification of a medicine.
type Schedule string

const (
	ScheduleOTC Schedule = "OTC"
	ScheduleH   Schedule = "H"
	ScheduleH1  Schedule = "H1"
	ScheduleX   Schedule = "X"
)

// Field identifies one prescription particular.
type Field struct {
	Key   string
	Label string
}

var (
	FieldRxNo         = Field{Key: "no", Label: "Prescription No."}
	FieldPrescriber   = Field{Key: "doctor", Label: "Prescriber"}
	FieldReg          = Field{Key: "reg", Label: "Reg. No."}
	FieldPatient      = Field{Key: "patient", Label: "Patient"}
	FieldAddress      = Field{Key: "address", Label: "Address"}
	FieldRetainedCopy = Field{Key: "retainedCopy", Label: "Retained Copy"}
)

var (
	hFields = []Field{FieldRxNo, FieldPrescriber, FieldReg}
	xFields = []Field{FieldRxNo, FieldPrescriber, FieldReg, FieldPatient, FieldAddress, FieldRetainedCopy}
)

// Known reports whether s is one of the four recognized schedule tags.
func (s Schedule) Known() bool {
	switch s {
	case ScheduleOTC, ScheduleH, ScheduleH1, ScheduleX:
		return true
	default:
		return false
	}
}

// Normalize parses a raw schedule tag. Unrecognized or malformed tags
// resolve to Schedule X: treating an unknown tag as OTC would silently
// bypass controlled-substance rules, so the parse fails closed.
func Normalize(raw string) Schedule {
	s := Schedule(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Known() {
		return ScheduleX
	}
	return s
}

// RequiredFields returns the ordered prescription fields mandated for a
// schedule. OTC requires none. An unrecognized value is treated as
// Schedule X (fail closed).
func RequiredFields(s Schedule) []Field {
	switch s {
	case ScheduleOTC:
		return nil
	case ScheduleH, ScheduleH1:
		return hFields
	default: // ScheduleX and anything unrecognized
		return xFields
	}
}

// Values holds the prescription particulars supplied with a sale attempt.
type Values struct {
	No           string
	Prescriber   string
	Reg          string
	Patient      string
	Address      string
	RetainedCopy bool
}

func (v Values) present(f Field) bool {
	switch f.Key {
	case FieldRxNo.Key:
		return strings.TrimSpace(v.No) != ""
	case FieldPrescriber.Key:
		return strings.TrimSpace(v.Prescriber) != ""
	case FieldReg.Key:
		return strings.TrimSpace(v.Reg) != ""
	case FieldPatient.Key:
		return strings.TrimSpace(v.Patient) != ""
	case FieldAddress.Key:
		return strings.TrimSpace(v.Address) != ""
	case FieldRetainedCopy.Key:
		// The retained-copy flag must actually be ticked, not merely present.
		return v.RetainedCopy
	default:
		return false
	}
}

// Missing returns the labels of every required field absent from v, in the
// canonical field order. All missing fields are reported, not just the
// first, so the operator sees the complete list in one message.
func Missing(s Schedule, v Values) []string {
	var missing []string
	for _, f := range RequiredFields(s) {
		if !v.present(f) {
			missing = append(missing, f.Label)
		}
	}
	return missing
}
