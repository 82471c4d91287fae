package policyrego

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"credverify/internal/domain"
)

const testPolicy = `package credverify.policy

import rego.v1

default result := {}

result := {"verdict": "SUSPICIOUS", "confidence": 50, "reasons": ["unaccredited institution"]} if {
	input.matched.institution_name == "Unaccredited College"
}
`

func writeBundle(t *testing.T, policy string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "policy.rego"), []byte(policy), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	return dir
}

func TestEngine_EscalatesOnMatch(t *testing.T) {
	dir := writeBundle(t, testPolicy)
	engine, err := NewEngineFromBundlePath(context.Background(), dir, "review-rules")
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}

	eval, err := engine.Evaluate(context.Background(), domain.PolicyInput{
		Verdict:    domain.VerdictValid,
		Confidence: 95,
		Matched: &domain.MatchedCertificateSummary{
			InstitutionName: "Unaccredited College",
		},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Verdict != domain.VerdictSuspicious || eval.Confidence != 50 {
		t.Fatalf("got %s/%d", eval.Verdict, eval.Confidence)
	}
	if len(eval.Reasons) != 1 {
		t.Fatalf("reasons: %v", eval.Reasons)
	}
	if eval.BundleID != "review-rules" || eval.BundleHash == "" {
		t.Fatalf("bundle identity: %q %q", eval.BundleID, eval.BundleHash)
	}
}

func TestEngine_EmptyResultMeansNoOpinion(t *testing.T) {
	dir := writeBundle(t, testPolicy)
	engine, err := NewEngineFromBundlePath(context.Background(), dir, "review-rules")
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}

	eval, err := engine.Evaluate(context.Background(), domain.PolicyInput{
		Verdict:    domain.VerdictValid,
		Confidence: 95,
		Matched: &domain.MatchedCertificateSummary{
			InstitutionName: "Ranchi University",
		},
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if eval.Verdict != "" {
		t.Fatalf("expected no verdict, got %s", eval.Verdict)
	}
}

func TestEngine_RejectsUnknownVerdict(t *testing.T) {
	dir := writeBundle(t, `package credverify.policy

result := {"verdict": "MAYBE"}
`)
	engine, err := NewEngineFromBundlePath(context.Background(), dir, "")
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	if _, err := engine.Evaluate(context.Background(), domain.PolicyInput{}); err == nil {
		t.Fatal("expected an error for an unknown verdict")
	}
}

func TestEngine_BundleHashIsStable(t *testing.T) {
	dir := writeBundle(t, testPolicy)
	first, err := ComputeBundleHashFromPath(dir)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := ComputeBundleHashFromPath(dir)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first != second {
		t.Fatal("bundle hash must be deterministic")
	}

	other := writeBundle(t, testPolicy+"\n# revision 2\n")
	changed, err := ComputeBundleHashFromPath(other)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if changed == first {
		t.Fatal("different content must hash differently")
	}
}
