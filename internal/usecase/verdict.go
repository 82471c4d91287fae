package usecase

import "credverify/internal/domain"

// VerdictInput is everything the decision list may consult.
type VerdictInput struct {
	HasCandidates bool
	TopScore      int
	Flags         []domain.Flag
}

func (in VerdictInput) hasFlag(flag domain.Flag) bool {
	for _, f := range in.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// VerdictRule is one guarded outcome in the ordered decision list.
type VerdictRule struct {
	Name       string
	When       func(in VerdictInput) bool
	Verdict    domain.Verdict
	Confidence int
}

// criticalFlags force an INVALID verdict regardless of match quality.
var criticalFlags = []domain.Flag{
	domain.FlagFutureDate,
	domain.FlagInactiveInstitution,
	domain.FlagCertNumberNameMismatch,
}

// DefaultVerdictRules is the built-in decision list, evaluated first match
// wins. The final rule always matches, so Decide is total.
func DefaultVerdictRules() []VerdictRule {
	return []VerdictRule{
		{
			Name: "critical_flag",
			When: func(in VerdictInput) bool {
				for _, flag := range criticalFlags {
					if in.hasFlag(flag) {
						return true
					}
				}
				return false
			},
			Verdict:    domain.VerdictInvalid,
			Confidence: 10,
		},
		{
			Name: "no_match_heavily_flagged",
			When: func(in VerdictInput) bool {
				return !in.HasCandidates && len(in.Flags) > 2
			},
			Verdict:    domain.VerdictInvalid,
			Confidence: 20,
		},
		{
			Name: "no_match",
			When: func(in VerdictInput) bool {
				return !in.HasCandidates
			},
			Verdict:    domain.VerdictSuspicious,
			Confidence: 30,
		},
		{
			Name: "strong_match_clean",
			When: func(in VerdictInput) bool {
				return in.TopScore >= 80 && len(in.Flags) == 0
			},
			Verdict:    domain.VerdictValid,
			Confidence: 95,
		},
		{
			Name: "good_match_lightly_flagged",
			When: func(in VerdictInput) bool {
				return in.TopScore >= 70 && len(in.Flags) <= 1
			},
			Verdict:    domain.VerdictValid,
			Confidence: 85,
		},
		{
			Name: "fair_match",
			When: func(in VerdictInput) bool {
				return in.TopScore >= 60 && len(in.Flags) <= 2
			},
			Verdict:    domain.VerdictSuspicious,
			Confidence: 70,
		},
		{
			Name:       "default_reject",
			When:       func(VerdictInput) bool { return true },
			Verdict:    domain.VerdictInvalid,
			Confidence: 40,
		},
	}
}

// VerdictEngine reduces (candidates, flags) to a verdict and confidence via
// its ordered rule list. Deterministic and total.
type VerdictEngine struct {
	rules []VerdictRule
}

func NewVerdictEngine() *VerdictEngine {
	return &VerdictEngine{rules: DefaultVerdictRules()}
}

func NewVerdictEngineWithRules(rules []VerdictRule) *VerdictEngine {
	return &VerdictEngine{rules: rules}
}

// Decide evaluates the decision list over the ranked candidates and the
// combined anomaly and forgery flags.
func (e *VerdictEngine) Decide(candidates []domain.MatchCandidate, anomalyFlags, forgeryFlags []domain.Flag) (domain.Verdict, int) {
	in := VerdictInput{
		HasCandidates: len(candidates) > 0,
		Flags:         CombineFlags(anomalyFlags, forgeryFlags),
	}
	if in.HasCandidates {
		in.TopScore = candidates[0].Score
	}
	for _, rule := range e.rules {
		if rule.When(in) {
			return rule.Verdict, rule.Confidence
		}
	}
	// Unreachable with the default rules; kept so a custom list short of a
	// catch-all still yields a verdict.
	return domain.VerdictInvalid, 40
}

// CombineFlags concatenates anomaly flags (first) and forgery flags,
// preserving order and duplicates: each instance later becomes one
// suspicious-activity record.
func CombineFlags(anomalyFlags, forgeryFlags []domain.Flag) []domain.Flag {
	combined := make([]domain.Flag, 0, len(anomalyFlags)+len(forgeryFlags))
	combined = append(combined, anomalyFlags...)
	combined = append(combined, forgeryFlags...)
	return combined
}
