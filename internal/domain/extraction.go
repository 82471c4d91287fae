package domain

import "strings"

// Field names the extractor is expected to produce. Values are raw,
// unvalidated strings.
const (
	FieldCertificateNumber = "certificate_number"
	FieldStudentName       = "student_name"
	FieldRollNumber        = "roll_number"
	FieldCourse            = "course"
	FieldYear              = "year"
	FieldGrade             = "grade"
	FieldPercentage        = "percentage"
)

type ExtractedFields map[string]string

// Get reports a field as present only when it has a non-blank value.
func (f ExtractedFields) Get(name string) (string, bool) {
	if f == nil {
		return "", false
	}
	value, ok := f[name]
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// ExtractionResult is the structured output of the external
// document-to-text extractor for one uploaded document.
type ExtractionResult struct {
	Fields       ExtractedFields `json:"fields"`
	ForgeryFlags []Flag          `json:"forgery_flags"`
	FileHash     string          `json:"file_hash"`
	Filename     string          `json:"filename"`
}
