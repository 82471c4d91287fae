package domain

// PolicyInput is the document handed to a deployment policy bundle after the
// built-in decision list has produced its verdict.
type PolicyInput struct {
	Verdict    Verdict                    `json:"verdict"`
	Confidence int                        `json:"confidence"`
	Flags      []Flag                     `json:"flags"`
	Fields     ExtractedFields            `json:"fields"`
	Matched    *MatchedCertificateSummary `json:"matched,omitempty"`
}

// PolicyEvaluation is a bundle's outcome. A policy may only escalate a
// verdict, never downgrade one; the decision list stays authoritative.
type PolicyEvaluation struct {
	Verdict    Verdict  `json:"verdict,omitempty"`
	Confidence int      `json:"confidence,omitempty"`
	Reasons    []string `json:"reasons,omitempty"`
	BundleID   string   `json:"bundle_id,omitempty"`
	BundleHash string   `json:"bundle_hash,omitempty"`
}
