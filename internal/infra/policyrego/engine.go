// Package policyrego evaluates an optional Rego policy bundle over the
// built-in decision list's outcome. Deployments use it to impose stricter
// acceptance rules; the use case layer only ever applies an escalation.
package policyrego

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"credverify/internal/domain"
	"credverify/internal/usecase"

	"github.com/open-policy-agent/opa/rego"
)

const defaultQuery = "data.credverify.policy.result"

type Engine struct {
	query      rego.PreparedEvalQuery
	bundleID   string
	bundleHash string
}

// NewEngineFromBundlePath loads and prepares the bundle at the given path.
func NewEngineFromBundlePath(ctx context.Context, bundlePath, bundleID string) (*Engine, error) {
	if bundlePath == "" {
		return nil, errors.New("policy bundle path is required")
	}
	bundleHash, err := ComputeBundleHashFromPath(bundlePath)
	if err != nil {
		return nil, err
	}
	r := rego.New(
		rego.Query(defaultQuery),
		rego.StrictBuiltinErrors(true),
		rego.Load([]string{bundlePath}, nil),
	)
	prepared, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, err
	}
	return &Engine{
		query:      prepared,
		bundleID:   bundleID,
		bundleHash: bundleHash,
	}, nil
}

func (e *Engine) BundleHash() string {
	return e.bundleHash
}

func (e *Engine) Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyEvaluation, error) {
	if e == nil {
		return domain.PolicyEvaluation{}, errors.New("policy engine is nil")
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return domain.PolicyEvaluation{}, err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.PolicyEvaluation{}, errors.New("empty policy result")
	}
	eval, err := decodeResult(results[0].Expressions[0].Value)
	if err != nil {
		return domain.PolicyEvaluation{}, err
	}
	eval.BundleID = e.bundleID
	eval.BundleHash = e.bundleHash
	return eval, nil
}

func decodeResult(raw any) (domain.PolicyEvaluation, error) {
	encoded, err := json.Marshal(raw)
	if err != nil {
		return domain.PolicyEvaluation{}, err
	}
	var decoded struct {
		Verdict    string   `json:"verdict"`
		Confidence int      `json:"confidence"`
		Reasons    []string `json:"reasons"`
	}
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return domain.PolicyEvaluation{}, fmt.Errorf("decode policy result: %w", err)
	}
	eval := domain.PolicyEvaluation{
		Confidence: decoded.Confidence,
		Reasons:    decoded.Reasons,
	}
	switch decoded.Verdict {
	case "":
	case string(domain.VerdictValid), string(domain.VerdictSuspicious), string(domain.VerdictInvalid):
		eval.Verdict = domain.Verdict(decoded.Verdict)
	default:
		return domain.PolicyEvaluation{}, fmt.Errorf("policy returned unknown verdict %q", decoded.Verdict)
	}
	return eval, nil
}

var _ usecase.PolicyEngine = (*Engine)(nil)
