package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"credverify/internal/domain"
	"credverify/internal/usecase"
)

type fileRegistry struct {
	certs []domain.Certificate
}

func (r *fileRegistry) ListCertificates(ctx context.Context) ([]domain.Certificate, error) {
	return r.certs, nil
}

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var extractionPath string
	var registryPath string
	var outPath string
	fs.StringVar(&extractionPath, "extraction", "", "extraction result JSON path")
	fs.StringVar(&registryPath, "registry", "", "registry snapshot JSON path (array of certificates)")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if extractionPath == "" || registryPath == "" {
		fmt.Fprintln(os.Stderr, "verify requires --extraction and --registry")
		return 1
	}

	extractionRaw, err := os.ReadFile(extractionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read extraction: %v\n", err)
		return 1
	}
	var extraction domain.ExtractionResult
	if err := json.Unmarshal(extractionRaw, &extraction); err != nil {
		fmt.Fprintf(os.Stderr, "parse extraction: %v\n", err)
		return 1
	}

	registryRaw, err := os.ReadFile(registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read registry: %v\n", err)
		return 1
	}
	var certs []domain.Certificate
	if err := json.Unmarshal(registryRaw, &certs); err != nil {
		fmt.Fprintf(os.Stderr, "parse registry: %v\n", err)
		return 1
	}

	verifier := &usecase.VerifyCertificate{
		Registry: &fileRegistry{certs: certs},
		Verdicts: usecase.NewVerdictEngine(),
	}
	result, err := verifier.Execute(context.Background(), usecase.VerifyCertificateRequest{
		Extraction: extraction,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return 1
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal result: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
