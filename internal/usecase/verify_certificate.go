package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"credverify/internal/domain"

	"github.com/google/uuid"
)

// VerifyCertificateRequest carries one extraction outcome into the engine.
// ExtractionErr set means the upstream extractor failed: no matching or
// anomaly logic runs and the verdict is forced to ERROR.
type VerifyCertificateRequest struct {
	Extraction    domain.ExtractionResult
	ExtractionErr error
	IPAddress     string
	UserAgent     string
}

// VerifyCertificate runs one verification attempt end to end: candidate
// search over the registry snapshot, anomaly detection against the best
// candidate, the verdict decision list, the optional policy bundle, and
// atomic persistence of the record plus its suspicious-activity children.
//
// Registry and Verdicts are required. Verifications may be nil for offline
// use (nothing is persisted and the result carries no log ID). Policy and
// Cache are optional.
type VerifyCertificate struct {
	Registry      RegistryReader
	Verifications VerificationWriter
	Verdicts      *VerdictEngine
	Policy        PolicyEngine
	Cache         VerificationCache
	CacheTTL      time.Duration
	Match         MatchConfig
	Now           func() time.Time
}

// Execute always returns a result with a verdict; a non-nil error
// accompanies ERROR results whose persistence itself failed.
func (uc *VerifyCertificate) Execute(ctx context.Context, req VerifyCertificateRequest) (*domain.VerificationResult, error) {
	now := uc.Now
	if now == nil {
		now = time.Now
	}

	if req.ExtractionErr != nil {
		return uc.fail(ctx, req, now, "Failed to process document", req.ExtractionErr)
	}

	extracted := req.Extraction.Fields
	fileHash := req.Extraction.FileHash

	if uc.Cache != nil && fileHash != "" {
		if cached, ok, err := uc.Cache.Get(ctx, fileHash); err == nil && ok && cached != nil {
			return uc.replay(ctx, req, now, *cached)
		}
	}

	registry, err := uc.Registry.ListCertificates(ctx)
	if err != nil {
		return uc.fail(ctx, req, now, "Unexpected error during verification", err)
	}

	rules := MatchRules(uc.matchConfig())
	candidates := FindCandidates(extracted, registry, rules, uc.matchConfig().MinimumScore)

	var best *domain.MatchCandidate
	if len(candidates) > 0 {
		best = &candidates[0]
	}

	anomalyFlags := DetectAnomalies(extracted, best, now)
	verdict, confidence := uc.Verdicts.Decide(candidates, anomalyFlags, req.Extraction.ForgeryFlags)
	flags := CombineFlags(anomalyFlags, req.Extraction.ForgeryFlags)

	result := &domain.VerificationResult{
		Verdict:    verdict,
		Confidence: confidence,
		Fields:     extracted,
		Flags:      flags,
	}
	if best != nil {
		result.Matched = &domain.MatchedCertificateSummary{
			ID:                best.Certificate.ID,
			CertificateNumber: best.Certificate.CertificateNumber,
			StudentName:       best.Certificate.StudentName,
			CourseName:        best.Certificate.CourseName,
			InstitutionName:   best.Certificate.InstitutionName,
			PassingYear:       best.Certificate.PassingYear,
			MatchScore:        best.Score,
			MatchDetails:      best.Details,
		}
	}

	if uc.Policy != nil {
		eval, err := uc.Policy.Evaluate(ctx, domain.PolicyInput{
			Verdict:    result.Verdict,
			Confidence: result.Confidence,
			Flags:      flags,
			Fields:     extracted,
			Matched:    result.Matched,
		})
		if err != nil {
			return uc.fail(ctx, req, now, "Unexpected error during verification", err)
		}
		applyPolicy(result, eval)
	}

	record := domain.VerificationRecord{
		ID:         uuid.NewString(),
		Filename:   req.Extraction.Filename,
		FileHash:   fileHash,
		Fields:     extracted,
		Verdict:    result.Verdict,
		Confidence: result.Confidence,
		Flags:      flags,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
		CreatedAt:  now().UTC(),
	}
	if best != nil {
		record.MatchedCertificateID = best.Certificate.ID
	}

	if uc.Verifications != nil {
		stored, err := uc.Verifications.CreateVerification(ctx, record, suspiciousActivities(record, flags, now))
		if err != nil {
			return uc.fail(ctx, req, now, "Unexpected error during verification", err)
		}
		result.LogID = stored.ID
	}

	if uc.Cache != nil && fileHash != "" {
		if err := uc.Cache.Put(ctx, fileHash, *result, uc.CacheTTL); err != nil {
			log.Printf("verification cache put failed: %v", err)
		}
	}
	return result, nil
}

// replay reuses a cached outcome for a repeated document. Scoring is
// skipped, but every attempt still gets its own audit record with the
// attempt's client metadata and a fresh log ID.
func (uc *VerifyCertificate) replay(ctx context.Context, req VerifyCertificateRequest, now func() time.Time, cached domain.VerificationResult) (*domain.VerificationResult, error) {
	result := cached
	if uc.Verifications == nil {
		return &result, nil
	}
	record := domain.VerificationRecord{
		ID:         uuid.NewString(),
		Filename:   req.Extraction.Filename,
		FileHash:   req.Extraction.FileHash,
		Fields:     result.Fields,
		Verdict:    result.Verdict,
		Confidence: result.Confidence,
		Flags:      result.Flags,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
		CreatedAt:  now().UTC(),
	}
	if result.Matched != nil {
		record.MatchedCertificateID = result.Matched.ID
	}
	stored, err := uc.Verifications.CreateVerification(ctx, record, suspiciousActivities(record, record.Flags, now))
	if err != nil {
		return uc.fail(ctx, req, now, "Unexpected error during verification", err)
	}
	result.LogID = stored.ID
	return &result, nil
}

// fail persists a best-effort ERROR record and builds the ERROR result.
// A persistence failure here is not recovered further; it surfaces to the
// caller alongside the result.
func (uc *VerifyCertificate) fail(ctx context.Context, req VerifyCertificateRequest, now func() time.Time, message string, cause error) (*domain.VerificationResult, error) {
	result := &domain.VerificationResult{
		Verdict: domain.VerdictError,
		Flags:   []domain.Flag{},
		Message: message,
		Err:     cause.Error(),
	}
	if uc.Verifications == nil {
		return result, nil
	}
	record := domain.VerificationRecord{
		ID:        uuid.NewString(),
		Filename:  req.Extraction.Filename,
		FileHash:  req.Extraction.FileHash,
		Fields:    domain.ExtractedFields{"error": cause.Error()},
		Verdict:   domain.VerdictError,
		Flags:     []domain.Flag{},
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		CreatedAt: now().UTC(),
	}
	stored, err := uc.Verifications.CreateVerification(ctx, record, nil)
	if err != nil {
		return result, fmt.Errorf("persist error log: %w", err)
	}
	result.LogID = stored.ID
	return result, nil
}

func (uc *VerifyCertificate) matchConfig() MatchConfig {
	if uc.Match == (MatchConfig{}) {
		return DefaultMatchConfig()
	}
	return uc.Match
}

// suspiciousActivities expands each flag instance into one record when the
// verdict warrants investigation.
func suspiciousActivities(record domain.VerificationRecord, flags []domain.Flag, now func() time.Time) []domain.SuspiciousActivity {
	if record.Verdict != domain.VerdictInvalid && record.Verdict != domain.VerdictSuspicious {
		return nil
	}
	severity := domain.SeverityMedium
	if record.Verdict == domain.VerdictInvalid {
		severity = domain.SeverityHigh
	}
	activities := make([]domain.SuspiciousActivity, 0, len(flags))
	for _, flag := range flags {
		activities = append(activities, domain.SuspiciousActivity{
			ID:             uuid.NewString(),
			VerificationID: record.ID,
			ActivityType:   flag,
			Description:    fmt.Sprintf("Detected %s in certificate verification", flag),
			Severity:       severity,
			Status:         "PENDING",
			CreatedAt:      now().UTC(),
		})
	}
	return activities
}

var verdictRank = map[domain.Verdict]int{
	domain.VerdictValid:      0,
	domain.VerdictSuspicious: 1,
	domain.VerdictInvalid:    2,
}

// applyPolicy lets a bundle escalate the verdict, never relax it.
func applyPolicy(result *domain.VerificationResult, eval domain.PolicyEvaluation) {
	evalCopy := eval
	result.Policy = &evalCopy
	if eval.Verdict == "" {
		return
	}
	if verdictRank[eval.Verdict] <= verdictRank[result.Verdict] {
		return
	}
	result.Verdict = eval.Verdict
	if eval.Confidence > 0 {
		result.Confidence = eval.Confidence
	}
}
