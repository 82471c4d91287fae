// Package extract parses structured certificate fields and forgery signals
// out of raw document text. It operates on text only; producing that text
// from an image or PDF is the job of an external extractor.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"credverify/internal/domain"
)

type fieldPatterns struct {
	field    string
	patterns []*regexp.Regexp
}

// Pattern order matters: the first pattern that matches a field wins.
var patternTable = []fieldPatterns{
	{domain.FieldCertificateNumber, compileAll(
		`certificate\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
		`cert\.?\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
		`registration\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
		`reg\.?\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
	)},
	{domain.FieldStudentName, compileAll(
		`student\s+name\s*:?\s*([a-z ]+)`,
		`this\s+is\s+to\s+certify\s+that\s+([a-z ]+)`,
		`name\s*:?\s*([a-z ]+)`,
		`mr\.?\s*\/?\s*ms\.?\s*([a-z ]+)`,
	)},
	{domain.FieldRollNumber, compileAll(
		`roll\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
		`enrollment\s+no\.?\s*:?\s*([a-z0-9/\-]+)`,
		`student\s+id\s*:?\s*([a-z0-9/\-]+)`,
	)},
	{domain.FieldCourse, compileAll(
		`course\s*:?\s*([a-z ]+)`,
		`degree\s*:?\s*([a-z ]+)`,
		`bachelor\s+of\s+([a-z ]+)`,
		`master\s+of\s+([a-z ]+)`,
		`diploma\s+in\s+([a-z ]+)`,
	)},
	{domain.FieldYear, compileAll(
		`year\s*:?\s*(\d{4})`,
		`passing\s+year\s*:?\s*(\d{4})`,
		`session\s*:?\s*(\d{4})`,
		`(\d{4})\s*session`,
	)},
	{domain.FieldGrade, compileAll(
		`grade\s*:?\s*([a-z+]+)`,
		`class\s*:?\s*([a-z ]+)`,
		`division\s*:?\s*([a-z ]+)`,
	)},
	{domain.FieldPercentage, compileAll(
		`(\d+\.?\d*)\s*%`,
		`marks?\s*:?\s*(\d+\.?\d*)`,
		`percentage\s*:?\s*(\d+\.?\d*)`,
	)},
}

// Horizontal whitespace collapses but line breaks survive: free-text
// captures stop at the end of their line instead of swallowing the next
// label.
var collapseRe = regexp.MustCompile(`[ \t]+`)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ParseFields pulls the known certificate fields out of raw text. Absent
// fields are simply omitted from the result.
func ParseFields(text string) domain.ExtractedFields {
	clean := collapseRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
	fields := domain.ExtractedFields{}
	for _, entry := range patternTable {
		for _, re := range entry.patterns {
			if m := re.FindStringSubmatch(clean); m != nil {
				fields[entry.field] = strings.TrimSpace(m[1])
				break
			}
		}
	}
	return fields
}

// HashContent is the file identity hash recorded with each verification.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
