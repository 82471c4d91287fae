package usecase

import (
	"context"
	"time"

	"credverify/internal/domain"
)

// RegistryReader supplies the point-in-time certificate snapshot candidate
// search scans.
type RegistryReader interface {
	ListCertificates(ctx context.Context) ([]domain.Certificate, error)
}

// RegistryAdmin covers the management surface of the registry store.
type RegistryAdmin interface {
	CreateInstitution(ctx context.Context, inst domain.Institution) (domain.Institution, error)
	ListInstitutions(ctx context.Context) ([]domain.Institution, error)
	CreateCertificate(ctx context.Context, cert domain.Certificate) (domain.Certificate, error)
	ListCertificatesPage(ctx context.Context, limit, offset int) ([]domain.Certificate, int64, error)
}

// VerificationWriter persists one verification attempt and its
// suspicious-activity children as a unit.
type VerificationWriter interface {
	CreateVerification(ctx context.Context, record domain.VerificationRecord, activities []domain.SuspiciousActivity) (domain.VerificationRecord, error)
}

type VerificationReader interface {
	GetVerification(ctx context.Context, id string) (domain.VerificationRecord, error)
	ListVerifications(ctx context.Context, limit, offset int) ([]domain.VerificationRecord, int64, error)
	ListSuspiciousActivities(ctx context.Context, limit, offset int) ([]domain.SuspiciousActivity, int64, error)
	Stats(ctx context.Context) (domain.VerificationStats, error)
}

type VerificationCache interface {
	Get(ctx context.Context, key string) (*domain.VerificationResult, bool, error)
	Put(ctx context.Context, key string, value domain.VerificationResult, ttl time.Duration) error
}

// PolicyEngine evaluates an optional deployment policy bundle over the
// decision-list outcome.
type PolicyEngine interface {
	Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyEvaluation, error)
}
