package domain

import "time"

type Institution struct {
	ID              string
	Name            string
	Code            string
	Type            string
	Address         string
	ContactEmail    string
	Phone           string
	EstablishedYear int
	IsActive        bool
	CreatedAt       time.Time
}

// Certificate is a point-in-time registry snapshot row. Institution fields
// are denormalized so candidate scoring and anomaly detection never read
// back through the store mid-verification.
type Certificate struct {
	ID                string
	CertificateNumber string
	StudentName       string
	RollNumber        string
	CourseName        string
	DegreeType        string
	PassingYear       int
	Grade             string
	Percentage        *float64
	IssueDate         time.Time
	InstitutionID     string
	InstitutionName   string
	InstitutionActive bool
	CreatedAt         time.Time
}
