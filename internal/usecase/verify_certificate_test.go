package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"credverify/internal/domain"
)

type staticRegistry struct {
	certs []domain.Certificate
	err   error
	calls int
}

func (r *staticRegistry) ListCertificates(ctx context.Context) ([]domain.Certificate, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.certs, nil
}

type recordingWriter struct {
	records    []domain.VerificationRecord
	activities [][]domain.SuspiciousActivity
	err        error
}

func (w *recordingWriter) CreateVerification(ctx context.Context, record domain.VerificationRecord, activities []domain.SuspiciousActivity) (domain.VerificationRecord, error) {
	if w.err != nil {
		return domain.VerificationRecord{}, w.err
	}
	w.records = append(w.records, record)
	w.activities = append(w.activities, activities)
	return record, nil
}

type trackingCache struct {
	mu      sync.Mutex
	entries map[string]domain.VerificationResult
	getKeys []string
	putKeys []string
}

func newTrackingCache() *trackingCache {
	return &trackingCache{entries: make(map[string]domain.VerificationResult)}
}

func (c *trackingCache) Get(ctx context.Context, key string) (*domain.VerificationResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getKeys = append(c.getKeys, key)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	value := entry
	return &value, true, nil
}

func (c *trackingCache) Put(ctx context.Context, key string, value domain.VerificationResult, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putKeys = append(c.putKeys, key)
	c.entries[key] = value
	return nil
}

type staticPolicyEngine struct {
	eval      domain.PolicyEvaluation
	err       error
	lastInput *domain.PolicyInput
}

func (e *staticPolicyEngine) Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyEvaluation, error) {
	e.lastInput = &input
	if e.err != nil {
		return domain.PolicyEvaluation{}, e.err
	}
	return e.eval, nil
}

func sampleRegistry() []domain.Certificate {
	return []domain.Certificate{
		{
			ID:                "cert-1",
			CertificateNumber: "RU/2023/BSC/001234",
			StudentName:       "Rahul Kumar Singh",
			RollNumber:        "RU23BSC001234",
			CourseName:        "Bachelor of Science in Computer Science",
			PassingYear:       2023,
			Grade:             "A",
			InstitutionName:   "Ranchi University",
			InstitutionActive: true,
		},
		{
			ID:                "cert-2",
			CertificateNumber: "RU/2022/BA/005678",
			StudentName:       "Priya Kumari",
			RollNumber:        "RU22BA005678",
			CourseName:        "Bachelor of Arts in English",
			PassingYear:       2022,
			Grade:             "B",
			InstitutionName:   "Ranchi University",
			InstitutionActive: true,
		},
	}
}

func cleanExtraction() domain.ExtractionResult {
	return domain.ExtractionResult{
		Fields: domain.ExtractedFields{
			domain.FieldCertificateNumber: "RU/2023/BSC/001234",
			domain.FieldStudentName:       "Rahul Kumar Singh",
			domain.FieldRollNumber:        "RU23BSC001234",
			domain.FieldCourse:            "Bachelor of Science in Computer Science",
			domain.FieldYear:              "2023",
		},
		FileHash: "hash-1",
		Filename: "degree.pdf",
	}
}

func TestVerifyCertificate_ValidEndToEnd(t *testing.T) {
	writer := &recordingWriter{}
	uc := &VerifyCertificate{
		Registry:      &staticRegistry{certs: sampleRegistry()},
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Now:           fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: cleanExtraction(),
		IPAddress:  "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictValid || result.Confidence != 95 {
		t.Fatalf("got %s/%d", result.Verdict, result.Confidence)
	}
	if result.Matched == nil {
		t.Fatal("VALID result must carry a matched certificate")
	}
	if result.Matched.ID != "cert-1" || result.Matched.MatchScore != 100 {
		t.Fatalf("matched summary: %+v", result.Matched)
	}
	if result.LogID == "" {
		t.Fatal("expected a persisted log ID")
	}
	if len(writer.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(writer.records))
	}
	record := writer.records[0]
	if record.Verdict != domain.VerdictValid || record.MatchedCertificateID != "cert-1" {
		t.Fatalf("persisted record: %+v", record)
	}
	if record.IPAddress != "203.0.113.7" {
		t.Fatalf("client address not persisted: %q", record.IPAddress)
	}
	if len(writer.activities[0]) != 0 {
		t.Fatalf("VALID verdict must create no suspicious activities, got %d", len(writer.activities[0]))
	}
}

func TestVerifyCertificate_ExtractionError(t *testing.T) {
	writer := &recordingWriter{}
	uc := &VerifyCertificate{
		Registry:      &staticRegistry{},
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Now:           fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction:    domain.ExtractionResult{Filename: "blurry.jpg"},
		ExtractionErr: errors.New("no readable text"),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictError {
		t.Fatalf("got verdict %s", result.Verdict)
	}
	if result.Err == "" {
		t.Fatal("ERROR result must carry the cause")
	}
	if len(writer.records) != 1 {
		t.Fatalf("expected an ERROR record, got %d", len(writer.records))
	}
	if writer.records[0].Fields["error"] == "" {
		t.Fatalf("ERROR record fields: %+v", writer.records[0].Fields)
	}
}

func TestVerifyCertificate_SuspiciousCreatesActivities(t *testing.T) {
	writer := &recordingWriter{}
	uc := &VerifyCertificate{
		Registry:      &staticRegistry{certs: sampleRegistry()},
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Now:           fixedNow,
	}

	// No registry match and two forgery flags: SUSPICIOUS at 30.
	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: domain.ExtractionResult{
			Fields: domain.ExtractedFields{
				domain.FieldStudentName: "Unknown Person",
			},
			ForgeryFlags: []domain.Flag{domain.FlagSpellingErrors, domain.FlagMissingRequiredFields},
			FileHash:     "hash-2",
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictSuspicious || result.Confidence != 30 {
		t.Fatalf("got %s/%d", result.Verdict, result.Confidence)
	}
	activities := writer.activities[0]
	if len(activities) != 2 {
		t.Fatalf("expected one activity per flag, got %d", len(activities))
	}
	for _, activity := range activities {
		if activity.Severity != domain.SeverityMedium {
			t.Fatalf("SUSPICIOUS maps to MEDIUM, got %s", activity.Severity)
		}
		if activity.Status != "PENDING" {
			t.Fatalf("activity status: %s", activity.Status)
		}
		if activity.VerificationID != writer.records[0].ID {
			t.Fatal("activity not linked to its verification record")
		}
	}
}

func TestVerifyCertificate_InvalidActivitiesAreHighSeverity(t *testing.T) {
	writer := &recordingWriter{}
	registry := sampleRegistry()
	registry[0].InstitutionActive = false
	uc := &VerifyCertificate{
		Registry:      &staticRegistry{certs: registry},
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Now:           fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: cleanExtraction(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictInvalid || result.Confidence != 10 {
		t.Fatalf("got %s/%d", result.Verdict, result.Confidence)
	}
	activities := writer.activities[0]
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	if activities[0].Severity != domain.SeverityHigh {
		t.Fatalf("INVALID maps to HIGH, got %s", activities[0].Severity)
	}
	if activities[0].ActivityType != domain.FlagInactiveInstitution {
		t.Fatalf("activity type: %s", activities[0].ActivityType)
	}
}

func TestVerifyCertificate_CacheHitSkipsScoring(t *testing.T) {
	cache := newTrackingCache()
	cached := domain.VerificationResult{
		Verdict:    domain.VerdictValid,
		Confidence: 95,
		LogID:      "log-earlier",
	}
	cache.entries["hash-1"] = cached

	uc := &VerifyCertificate{
		Registry: &staticRegistry{err: errors.New("registry must not be consulted")},
		Verdicts: NewVerdictEngine(),
		Cache:    cache,
		Now:      fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: cleanExtraction(),
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictValid || result.Confidence != 95 {
		t.Fatalf("expected the cached outcome, got %+v", result)
	}
	if len(cache.putKeys) != 0 {
		t.Fatal("cache hit must not write back")
	}
}

func TestVerifyCertificate_RepeatDocumentStillLogged(t *testing.T) {
	writer := &recordingWriter{}
	registry := &staticRegistry{certs: sampleRegistry()}
	uc := &VerifyCertificate{
		Registry:      registry,
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Cache:         newTrackingCache(),
		CacheTTL:      time.Minute,
		Now:           fixedNow,
	}

	first, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: cleanExtraction(),
		IPAddress:  "203.0.113.7",
		UserAgent:  "client/1",
	})
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	second, err := uc.Execute(context.Background(), VerifyCertificateRequest{
		Extraction: cleanExtraction(),
		IPAddress:  "203.0.113.99",
		UserAgent:  "client/2",
	})
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}

	if registry.calls != 1 {
		t.Fatalf("repeated document must not rescan the registry, got %d scans", registry.calls)
	}
	if len(writer.records) != 2 {
		t.Fatalf("expected one record per attempt, got %d", len(writer.records))
	}
	if writer.records[1].IPAddress != "203.0.113.99" || writer.records[1].UserAgent != "client/2" {
		t.Fatalf("second attempt's client metadata not recorded: %+v", writer.records[1])
	}
	if second.LogID == "" || second.LogID == first.LogID {
		t.Fatalf("each attempt needs its own log ID: %q then %q", first.LogID, second.LogID)
	}
	if second.Verdict != first.Verdict || second.Confidence != first.Confidence {
		t.Fatalf("cached outcome must be reused: %s/%d then %s/%d",
			first.Verdict, first.Confidence, second.Verdict, second.Confidence)
	}
	if writer.records[1].MatchedCertificateID != writer.records[0].MatchedCertificateID {
		t.Fatalf("matched certificate must carry over: %q then %q",
			writer.records[0].MatchedCertificateID, writer.records[1].MatchedCertificateID)
	}
}

func TestVerifyCertificate_CacheMissPopulates(t *testing.T) {
	cache := newTrackingCache()
	uc := &VerifyCertificate{
		Registry: &staticRegistry{certs: sampleRegistry()},
		Verdicts: NewVerdictEngine(),
		Cache:    cache,
		CacheTTL: time.Minute,
		Now:      fixedNow,
	}

	if _, err := uc.Execute(context.Background(), VerifyCertificateRequest{Extraction: cleanExtraction()}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(cache.putKeys) != 1 || cache.putKeys[0] != "hash-1" {
		t.Fatalf("cache put keys: %v", cache.putKeys)
	}
}

func TestVerifyCertificate_PolicyEscalates(t *testing.T) {
	policy := &staticPolicyEngine{
		eval: domain.PolicyEvaluation{
			Verdict:    domain.VerdictSuspicious,
			Confidence: 55,
			Reasons:    []string{"institution under review"},
		},
	}
	uc := &VerifyCertificate{
		Registry: &staticRegistry{certs: sampleRegistry()},
		Verdicts: NewVerdictEngine(),
		Policy:   policy,
		Now:      fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{Extraction: cleanExtraction()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictSuspicious || result.Confidence != 55 {
		t.Fatalf("policy escalation: got %s/%d", result.Verdict, result.Confidence)
	}
	if result.Policy == nil || len(result.Policy.Reasons) != 1 {
		t.Fatalf("policy evaluation not attached: %+v", result.Policy)
	}
	if policy.lastInput == nil || policy.lastInput.Verdict != domain.VerdictValid {
		t.Fatalf("policy input should carry the engine verdict, got %+v", policy.lastInput)
	}
}

func TestVerifyCertificate_PolicyNeverRelaxes(t *testing.T) {
	policy := &staticPolicyEngine{
		eval: domain.PolicyEvaluation{Verdict: domain.VerdictValid, Confidence: 99},
	}
	registry := sampleRegistry()
	registry[0].InstitutionActive = false
	uc := &VerifyCertificate{
		Registry: &staticRegistry{certs: registry},
		Verdicts: NewVerdictEngine(),
		Policy:   policy,
		Now:      fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{Extraction: cleanExtraction()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Verdict != domain.VerdictInvalid || result.Confidence != 10 {
		t.Fatalf("policy must not downgrade, got %s/%d", result.Verdict, result.Confidence)
	}
}

func TestVerifyCertificate_OfflineSkipsPersistence(t *testing.T) {
	uc := &VerifyCertificate{
		Registry: &staticRegistry{certs: sampleRegistry()},
		Verdicts: NewVerdictEngine(),
		Now:      fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{Extraction: cleanExtraction()})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.LogID != "" {
		t.Fatalf("offline run must not produce a log ID, got %q", result.LogID)
	}
	if result.Verdict != domain.VerdictValid {
		t.Fatalf("got verdict %s", result.Verdict)
	}
}

func TestVerifyCertificate_PersistFailureSurfaces(t *testing.T) {
	writer := &recordingWriter{err: errors.New("connection refused")}
	uc := &VerifyCertificate{
		Registry:      &staticRegistry{certs: sampleRegistry()},
		Verifications: writer,
		Verdicts:      NewVerdictEngine(),
		Now:           fixedNow,
	}

	result, err := uc.Execute(context.Background(), VerifyCertificateRequest{Extraction: cleanExtraction()})
	if err == nil {
		t.Fatal("expected an error when persistence fails")
	}
	if result == nil || result.Verdict != domain.VerdictError {
		t.Fatalf("persistence failure degrades to ERROR, got %+v", result)
	}
}
