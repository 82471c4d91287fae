package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"credverify/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegistryRepository struct {
	db *gorm.DB
}

func NewRegistryRepository(db *gorm.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

type certificateRow struct {
	CertificateModel
	InstitutionName   string
	InstitutionActive bool
}

// ListCertificates reads the full registry snapshot candidate search scans,
// institution fields denormalized, ordered by ID for reproducible ties.
func (r *RegistryRepository) ListCertificates(ctx context.Context) ([]domain.Certificate, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var rows []certificateRow
	err := r.db.WithContext(ctx).
		Table("certificates").
		Select("certificates.*, institutions.name AS institution_name, institutions.is_active AS institution_active").
		Joins("JOIN institutions ON institutions.id = certificates.institution_id").
		Order("certificates.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	certs := make([]domain.Certificate, 0, len(rows))
	for _, row := range rows {
		certs = append(certs, certificateFromRow(row))
	}
	return certs, nil
}

func (r *RegistryRepository) CreateInstitution(ctx context.Context, inst domain.Institution) (domain.Institution, error) {
	if r.db == nil {
		return domain.Institution{}, errDBUnavailable
	}
	if strings.TrimSpace(inst.Name) == "" || strings.TrimSpace(inst.Code) == "" {
		return domain.Institution{}, domain.ErrInvalidArgument
	}
	if inst.ID == "" {
		inst.ID = uuid.NewString()
	}
	if inst.CreatedAt.IsZero() {
		inst.CreatedAt = time.Now().UTC()
	}
	model := InstitutionModel{
		ID:              inst.ID,
		Name:            inst.Name,
		Code:            inst.Code,
		Type:            inst.Type,
		Address:         inst.Address,
		ContactEmail:    inst.ContactEmail,
		Phone:           inst.Phone,
		EstablishedYear: inst.EstablishedYear,
		IsActive:        inst.IsActive,
		CreatedAt:       inst.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Institution{}, domain.ErrConflict
		}
		return domain.Institution{}, err
	}
	return inst, nil
}

func (r *RegistryRepository) ListInstitutions(ctx context.Context) ([]domain.Institution, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []InstitutionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	institutions := make([]domain.Institution, 0, len(models))
	for _, m := range models {
		institutions = append(institutions, domain.Institution{
			ID:              m.ID,
			Name:            m.Name,
			Code:            m.Code,
			Type:            m.Type,
			Address:         m.Address,
			ContactEmail:    m.ContactEmail,
			Phone:           m.Phone,
			EstablishedYear: m.EstablishedYear,
			IsActive:        m.IsActive,
			CreatedAt:       m.CreatedAt,
		})
	}
	return institutions, nil
}

func (r *RegistryRepository) CreateCertificate(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	if r.db == nil {
		return domain.Certificate{}, errDBUnavailable
	}
	if strings.TrimSpace(cert.CertificateNumber) == "" ||
		strings.TrimSpace(cert.StudentName) == "" ||
		strings.TrimSpace(cert.CourseName) == "" ||
		cert.InstitutionID == "" {
		return domain.Certificate{}, domain.ErrInvalidArgument
	}
	var inst InstitutionModel
	if err := r.db.WithContext(ctx).First(&inst, "id = ?", cert.InstitutionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Certificate{}, domain.ErrNotFound
		}
		return domain.Certificate{}, err
	}
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	if cert.CreatedAt.IsZero() {
		cert.CreatedAt = time.Now().UTC()
	}
	model := CertificateModel{
		ID:                cert.ID,
		CertificateNumber: cert.CertificateNumber,
		StudentName:       cert.StudentName,
		RollNumber:        cert.RollNumber,
		CourseName:        cert.CourseName,
		DegreeType:        cert.DegreeType,
		PassingYear:       cert.PassingYear,
		Grade:             cert.Grade,
		Percentage:        cert.Percentage,
		IssueDate:         cert.IssueDate,
		InstitutionID:     cert.InstitutionID,
		CreatedAt:         cert.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Certificate{}, domain.ErrConflict
		}
		return domain.Certificate{}, err
	}
	cert.InstitutionName = inst.Name
	cert.InstitutionActive = inst.IsActive
	return cert, nil
}

func (r *RegistryRepository) ListCertificatesPage(ctx context.Context, limit, offset int) ([]domain.Certificate, int64, error) {
	if r.db == nil {
		return nil, 0, errDBUnavailable
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&CertificateModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []certificateRow
	err := r.db.WithContext(ctx).
		Table("certificates").
		Select("certificates.*, institutions.name AS institution_name, institutions.is_active AS institution_active").
		Joins("JOIN institutions ON institutions.id = certificates.institution_id").
		Order("certificates.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	certs := make([]domain.Certificate, 0, len(rows))
	for _, row := range rows {
		certs = append(certs, certificateFromRow(row))
	}
	return certs, total, nil
}

func certificateFromRow(row certificateRow) domain.Certificate {
	return domain.Certificate{
		ID:                row.ID,
		CertificateNumber: row.CertificateNumber,
		StudentName:       row.StudentName,
		RollNumber:        row.RollNumber,
		CourseName:        row.CourseName,
		DegreeType:        row.DegreeType,
		PassingYear:       row.PassingYear,
		Grade:             row.Grade,
		Percentage:        row.Percentage,
		IssueDate:         row.IssueDate,
		InstitutionID:     row.InstitutionID,
		InstitutionName:   row.InstitutionName,
		InstitutionActive: row.InstitutionActive,
		CreatedAt:         row.CreatedAt,
	}
}
