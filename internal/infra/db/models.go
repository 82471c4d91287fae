package db

import "time"

type InstitutionModel struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"uniqueIndex;not null"`
	Code            string    `gorm:"uniqueIndex;not null"`
	Type            string    `gorm:"not null"`
	Address         string    `gorm:"type:text"`
	ContactEmail    string
	Phone           string
	EstablishedYear int
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (InstitutionModel) TableName() string {
	return "institutions"
}

type CertificateModel struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	CertificateNumber string    `gorm:"index:idx_cert_number_institution,unique;not null"`
	StudentName       string    `gorm:"not null"`
	RollNumber        string
	CourseName        string    `gorm:"not null"`
	DegreeType        string    `gorm:"not null"`
	PassingYear       int       `gorm:"index;not null"`
	Grade             string
	Percentage        *float64
	IssueDate         time.Time `gorm:"not null"`
	InstitutionID     string    `gorm:"type:uuid;index:idx_cert_number_institution,unique;index;not null"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

type VerificationLogModel struct {
	ID                   string    `gorm:"type:uuid;primaryKey"`
	UploadedFilename     string    `gorm:"not null"`
	FileHash             string    `gorm:"index"`
	ExtractedJSON        []byte    `gorm:"type:jsonb"`
	VerificationStatus   string    `gorm:"index;not null"`
	ConfidenceScore      int       `gorm:"not null"`
	MatchedCertificateID *string   `gorm:"type:uuid;index"`
	FlagsJSON            []byte    `gorm:"type:jsonb"`
	IPAddress            string
	UserAgent            string    `gorm:"type:text"`
	CreatedAt            time.Time `gorm:"index;not null"`
}

func (VerificationLogModel) TableName() string {
	return "verification_logs"
}

type SuspiciousActivityModel struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	VerificationLogID string    `gorm:"type:uuid;index;not null"`
	ActivityType      string    `gorm:"index;not null"`
	Description       string    `gorm:"type:text"`
	Severity          string    `gorm:"not null"`
	Status            string    `gorm:"index;not null"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (SuspiciousActivityModel) TableName() string {
	return "suspicious_activities"
}
