package domain

import "time"

type Verdict string

const (
	VerdictValid      Verdict = "VALID"
	VerdictInvalid    Verdict = "INVALID"
	VerdictSuspicious Verdict = "SUSPICIOUS"
	VerdictError      Verdict = "ERROR"
)

type Flag string

// Anomaly flags raised by the detector over extracted data and the best
// candidate.
const (
	FlagFutureDate              Flag = "FUTURE_DATE"
	FlagInvalidDate             Flag = "INVALID_DATE"
	FlagInvalidYearFormat       Flag = "INVALID_YEAR_FORMAT"
	FlagGradePercentageMismatch Flag = "GRADE_PERCENTAGE_MISMATCH"
	FlagInvalidPercentageFormat Flag = "INVALID_PERCENTAGE_FORMAT"
	FlagInactiveInstitution     Flag = "INACTIVE_INSTITUTION"
	FlagCertNumberNameMismatch  Flag = "CERT_NUMBER_NAME_MISMATCH"
	FlagCertNumberYearMismatch  Flag = "CERT_NUMBER_YEAR_MISMATCH"
)

// Forgery flags raised by raw-text heuristics, upstream of matching.
const (
	FlagSuspiciousFormatting  Flag = "SUSPICIOUS_FORMATTING"
	FlagSpellingErrors        Flag = "SPELLING_ERRORS"
	FlagMissingRequiredFields Flag = "MISSING_REQUIRED_FIELDS"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// MatchDetails records per-field match evidence: "EXACT", "PARTIAL",
// "CLOSE", or a numeric similarity score.
type MatchDetails map[string]any

// MatchCandidate pairs one registry record with its score against one
// verification attempt. Transient; only its summary is persisted.
type MatchCandidate struct {
	Certificate Certificate
	Score       int
	Details     MatchDetails
}

// VerificationRecord is the persisted outcome of one verification attempt.
type VerificationRecord struct {
	ID                   string
	Filename             string
	FileHash             string
	Fields               ExtractedFields
	Verdict              Verdict
	Confidence           int
	MatchedCertificateID string
	Flags                []Flag
	IPAddress            string
	UserAgent            string
	CreatedAt            time.Time
}

type SuspiciousActivity struct {
	ID             string
	VerificationID string
	ActivityType   Flag
	Description    string
	Severity       Severity
	Status         string
	CreatedAt      time.Time
}

// MatchedCertificateSummary is the caller-facing view of the best candidate.
type MatchedCertificateSummary struct {
	ID                string       `json:"id"`
	CertificateNumber string       `json:"certificate_number"`
	StudentName       string       `json:"student_name"`
	CourseName        string       `json:"course_name"`
	InstitutionName   string       `json:"institution_name"`
	PassingYear       int          `json:"passing_year"`
	MatchScore        int          `json:"match_score"`
	MatchDetails      MatchDetails `json:"match_details"`
}

// VerificationResult is what the caller always receives, ERROR included.
type VerificationResult struct {
	Verdict    Verdict                    `json:"status"`
	Confidence int                        `json:"confidence_score"`
	Fields     ExtractedFields            `json:"extracted_data,omitempty"`
	Flags      []Flag                     `json:"flags"`
	LogID      string                     `json:"log_id,omitempty"`
	Matched    *MatchedCertificateSummary `json:"matched_certificate,omitempty"`
	Policy     *PolicyEvaluation          `json:"policy,omitempty"`
	Message    string                     `json:"message,omitempty"`
	Err        string                     `json:"error,omitempty"`
}

// VerificationStats aggregates log counts for the dashboard endpoint.
type VerificationStats struct {
	TotalVerifications int64 `json:"total_verifications"`
	ValidCount         int64 `json:"valid_count"`
	InvalidCount       int64 `json:"invalid_count"`
	SuspiciousCount    int64 `json:"suspicious_count"`
	ErrorCount         int64 `json:"error_count"`
	TotalInstitutions  int64 `json:"total_institutions"`
	ActiveInstitutions int64 `json:"active_institutions"`
}
