package usecase

import (
	"sort"
	"strconv"
	"strings"

	"credverify/internal/domain"
	"credverify/internal/match"
)

// MatchConfig holds the tunable weights and thresholds of the candidate
// scoring table.
type MatchConfig struct {
	CertNumberExactWeight int
	CertNumberFuzzyWeight int
	CertNumberFuzzyMin    int
	NameWeight            int
	NameThreshold         int
	RollNumberExactWeight int
	CourseWeight          int
	CourseThreshold       int
	YearExactWeight       int
	YearCloseWeight       int
	MinimumScore          int
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		CertNumberExactWeight: 40,
		CertNumberFuzzyWeight: 20,
		CertNumberFuzzyMin:    80,
		NameWeight:            25,
		NameThreshold:         80,
		RollNumberExactWeight: 20,
		CourseWeight:          15,
		CourseThreshold:       75,
		YearExactWeight:       10,
		YearCloseWeight:       5,
		MinimumScore:          30,
	}
}

// FieldScorer scores one extracted field against one registry record. It
// returns the points contributed and the evidence to record, or (0, nil)
// when the field does not help this record.
type FieldScorer func(value string, cert domain.Certificate) (int, any)

// MatchRule binds one extracted field to its scorer and the match_details
// key its evidence is recorded under.
type MatchRule struct {
	Field     string
	DetailKey string
	Score     FieldScorer
}

// MatchRules builds the declarative scoring table. Each row is independent:
// a missing extracted field contributes nothing and carries no penalty.
func MatchRules(cfg MatchConfig) []MatchRule {
	return []MatchRule{
		{
			Field:     domain.FieldCertificateNumber,
			DetailKey: "certificate_number_match",
			Score: func(value string, cert domain.Certificate) (int, any) {
				if strings.EqualFold(value, cert.CertificateNumber) {
					return cfg.CertNumberExactWeight, "EXACT"
				}
				if match.Ratio(strings.ToUpper(value), strings.ToUpper(cert.CertificateNumber)) > cfg.CertNumberFuzzyMin {
					return cfg.CertNumberFuzzyWeight, "PARTIAL"
				}
				return 0, nil
			},
		},
		{
			Field:     domain.FieldStudentName,
			DetailKey: "name_match_score",
			Score: func(value string, cert domain.Certificate) (int, any) {
				if score := match.NameScore(value, cert.StudentName); score > cfg.NameThreshold {
					return cfg.NameWeight, score
				}
				return 0, nil
			},
		},
		{
			Field:     domain.FieldRollNumber,
			DetailKey: "roll_number_match",
			Score: func(value string, cert domain.Certificate) (int, any) {
				if cert.RollNumber != "" && strings.EqualFold(value, cert.RollNumber) {
					return cfg.RollNumberExactWeight, "EXACT"
				}
				return 0, nil
			},
		},
		{
			Field:     domain.FieldCourse,
			DetailKey: "course_match_score",
			Score: func(value string, cert domain.Certificate) (int, any) {
				if score := match.CourseScore(value, cert.CourseName); score > cfg.CourseThreshold {
					return cfg.CourseWeight, score
				}
				return 0, nil
			},
		},
		{
			Field:     domain.FieldYear,
			DetailKey: "year_match",
			Score: func(value string, cert domain.Certificate) (int, any) {
				year, err := strconv.Atoi(strings.TrimSpace(value))
				if err != nil {
					return 0, nil
				}
				if year == cert.PassingYear {
					return cfg.YearExactWeight, "EXACT"
				}
				diff := year - cert.PassingYear
				if diff < 0 {
					diff = -diff
				}
				if diff <= 1 {
					return cfg.YearCloseWeight, "CLOSE"
				}
				return 0, nil
			},
		},
	}
}

// FindCandidates scores every registry record against the extracted fields
// and returns the candidates at or above cfg.MinimumScore, best first.
// Totals clamp to 100 so a record exact on every field scores exactly 100.
// Equal scores order by record ID so results are reproducible regardless of
// the store's iteration order.
func FindCandidates(extracted domain.ExtractedFields, registry []domain.Certificate, rules []MatchRule, minimumScore int) []domain.MatchCandidate {
	candidates := make([]domain.MatchCandidate, 0)
	for _, cert := range registry {
		score := 0
		details := domain.MatchDetails{}
		for _, rule := range rules {
			value, ok := extracted.Get(rule.Field)
			if !ok {
				continue
			}
			points, evidence := rule.Score(value, cert)
			if points <= 0 {
				continue
			}
			score += points
			details[rule.DetailKey] = evidence
		}
		if score > 100 {
			score = 100
		}
		if score >= minimumScore {
			candidates = append(candidates, domain.MatchCandidate{
				Certificate: cert,
				Score:       score,
				Details:     details,
			})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Certificate.ID < candidates[j].Certificate.ID
	})
	return candidates
}
