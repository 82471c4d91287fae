package usecase

import (
	"strconv"
	"strings"
	"time"

	"credverify/internal/domain"
	"credverify/internal/match"
)

const (
	oldestPlausibleYear = 1950
	certNameMatchFloor  = 95
)

// DetectAnomalies inspects extracted data, and the best candidate when one
// exists, for internally inconsistent or implausible values. Every
// applicable rule fires; flags accumulate in rule order. Malformed numeric
// fields raise a format flag and are otherwise treated as absent, so one
// bad field never blocks the remaining rules. now supplies the current-year
// reference.
func DetectAnomalies(extracted domain.ExtractedFields, best *domain.MatchCandidate, now func() time.Time) []domain.Flag {
	if now == nil {
		now = time.Now
	}
	flags := make([]domain.Flag, 0)

	yearValue, yearPresent := extracted.Get(domain.FieldYear)
	year, yearErr := strconv.Atoi(strings.TrimSpace(yearValue))
	yearNumeric := yearPresent && yearErr == nil
	if yearPresent {
		switch {
		case yearErr != nil:
			flags = append(flags, domain.FlagInvalidYearFormat)
		case year > now().Year():
			flags = append(flags, domain.FlagFutureDate)
		case year < oldestPlausibleYear:
			flags = append(flags, domain.FlagInvalidDate)
		}
	}

	grade, gradePresent := extracted.Get(domain.FieldGrade)
	percentValue, percentPresent := extracted.Get(domain.FieldPercentage)
	if gradePresent && percentPresent {
		percentage, err := strconv.ParseFloat(strings.TrimSpace(percentValue), 64)
		if err != nil {
			flags = append(flags, domain.FlagInvalidPercentageFormat)
		} else if gradeConflictsWithPercentage(strings.ToUpper(grade), percentage) {
			flags = append(flags, domain.FlagGradePercentageMismatch)
		}
	}

	if best != nil {
		cert := best.Certificate
		if !cert.InstitutionActive {
			flags = append(flags, domain.FlagInactiveInstitution)
		}

		// An exact certificate number binds the rest of the document to
		// this record: the remaining fields must agree.
		certNumber, ok := extracted.Get(domain.FieldCertificateNumber)
		if ok && strings.EqualFold(certNumber, cert.CertificateNumber) {
			if name, ok := extracted.Get(domain.FieldStudentName); ok {
				if match.NameScore(name, cert.StudentName) < certNameMatchFloor {
					flags = append(flags, domain.FlagCertNumberNameMismatch)
				}
			}
			if yearNumeric && year != cert.PassingYear {
				flags = append(flags, domain.FlagCertNumberYearMismatch)
			}
		}
	}

	return flags
}

// Grades outside A/B/C are not banded and raise no flag.
func gradeConflictsWithPercentage(grade string, percentage float64) bool {
	switch grade {
	case "A":
		return percentage < 80
	case "B":
		return percentage < 60 || percentage >= 80
	case "C":
		return percentage < 40 || percentage >= 60
	default:
		return false
	}
}
