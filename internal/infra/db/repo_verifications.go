package db

import (
	"context"
	"encoding/json"
	"errors"

	"credverify/internal/domain"

	"gorm.io/gorm"
)

type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// CreateVerification writes the log row and its suspicious-activity
// children in one transaction: either the full attempt is recorded or none
// of it is.
func (r *VerificationRepository) CreateVerification(ctx context.Context, record domain.VerificationRecord, activities []domain.SuspiciousActivity) (domain.VerificationRecord, error) {
	if r.db == nil {
		return domain.VerificationRecord{}, errDBUnavailable
	}
	model, err := logModelFromRecord(record)
	if err != nil {
		return domain.VerificationRecord{}, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		for _, activity := range activities {
			activityModel := SuspiciousActivityModel{
				ID:                activity.ID,
				VerificationLogID: record.ID,
				ActivityType:      string(activity.ActivityType),
				Description:       activity.Description,
				Severity:          string(activity.Severity),
				Status:            activity.Status,
				CreatedAt:         activity.CreatedAt,
			}
			if err := tx.Create(&activityModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.VerificationRecord{}, err
	}
	return record, nil
}

func (r *VerificationRepository) GetVerification(ctx context.Context, id string) (domain.VerificationRecord, error) {
	if r.db == nil {
		return domain.VerificationRecord{}, errDBUnavailable
	}
	var model VerificationLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VerificationRecord{}, domain.ErrNotFound
		}
		return domain.VerificationRecord{}, err
	}
	return recordFromLogModel(model)
}

func (r *VerificationRepository) ListVerifications(ctx context.Context, limit, offset int) ([]domain.VerificationRecord, int64, error) {
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
	if err := r.db.WithContext(ctx).Model(&VerificationLogModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []VerificationLogModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	records := make([]domain.VerificationRecord, 0, len(models))
	for _, model := range models {
		record, err := recordFromLogModel(model)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, record)
	}
	return records, total, nil
}

func (r *VerificationRepository) ListSuspiciousActivities(ctx context.Context, limit, offset int) ([]domain.SuspiciousActivity, int64, error) {
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
	if err := r.db.WithContext(ctx).Model(&SuspiciousActivityModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var models []SuspiciousActivityModel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	activities := make([]domain.SuspiciousActivity, 0, len(models))
	for _, model := range models {
		activities = append(activities, domain.SuspiciousActivity{
			ID:             model.ID,
			VerificationID: model.VerificationLogID,
			ActivityType:   domain.Flag(model.ActivityType),
			Description:    model.Description,
			Severity:       domain.Severity(model.Severity),
			Status:         model.Status,
			CreatedAt:      model.CreatedAt,
		})
	}
	return activities, total, nil
}

func (r *VerificationRepository) Stats(ctx context.Context) (domain.VerificationStats, error) {
	if r.db == nil {
		return domain.VerificationStats{}, errDBUnavailable
	}
	var stats domain.VerificationStats
	base := r.db.WithContext(ctx).Model(&VerificationLogModel{})
	if err := base.Count(&stats.TotalVerifications).Error; err != nil {
		return domain.VerificationStats{}, err
	}
	counts := []struct {
		status string
		target *int64
	}{
		{string(domain.VerdictValid), &stats.ValidCount},
		{string(domain.VerdictInvalid), &stats.InvalidCount},
		{string(domain.VerdictSuspicious), &stats.SuspiciousCount},
		{string(domain.VerdictError), &stats.ErrorCount},
	}
	for _, c := range counts {
		err := r.db.WithContext(ctx).
			Model(&VerificationLogModel{}).
			Where("verification_status = ?", c.status).
			Count(c.target).Error
		if err != nil {
			return domain.VerificationStats{}, err
		}
	}
	if err := r.db.WithContext(ctx).Model(&InstitutionModel{}).Count(&stats.TotalInstitutions).Error; err != nil {
		return domain.VerificationStats{}, err
	}
	err := r.db.WithContext(ctx).
		Model(&InstitutionModel{}).
		Where("is_active = ?", true).
		Count(&stats.ActiveInstitutions).Error
	if err != nil {
		return domain.VerificationStats{}, err
	}
	return stats, nil
}

func logModelFromRecord(record domain.VerificationRecord) (VerificationLogModel, error) {
	extractedJSON, err := json.Marshal(record.Fields)
	if err != nil {
		return VerificationLogModel{}, err
	}
	flagsJSON, err := json.Marshal(record.Flags)
	if err != nil {
		return VerificationLogModel{}, err
	}
	model := VerificationLogModel{
		ID:                 record.ID,
		UploadedFilename:   record.Filename,
		FileHash:           record.FileHash,
		ExtractedJSON:      extractedJSON,
		VerificationStatus: string(record.Verdict),
		ConfidenceScore:    record.Confidence,
		FlagsJSON:          flagsJSON,
		IPAddress:          record.IPAddress,
		UserAgent:          record.UserAgent,
		CreatedAt:          record.CreatedAt,
	}
	if record.MatchedCertificateID != "" {
		matched := record.MatchedCertificateID
		model.MatchedCertificateID = &matched
	}
	return model, nil
}

func recordFromLogModel(model VerificationLogModel) (domain.VerificationRecord, error) {
	record := domain.VerificationRecord{
		ID:         model.ID,
		Filename:   model.UploadedFilename,
		FileHash:   model.FileHash,
		Verdict:    domain.Verdict(model.VerificationStatus),
		Confidence: model.ConfidenceScore,
		IPAddress:  model.IPAddress,
		UserAgent:  model.UserAgent,
		CreatedAt:  model.CreatedAt,
	}
	if model.MatchedCertificateID != nil {
		record.MatchedCertificateID = *model.MatchedCertificateID
	}
	if len(model.ExtractedJSON) > 0 {
		if err := json.Unmarshal(model.ExtractedJSON, &record.Fields); err != nil {
			return domain.VerificationRecord{}, err
		}
	}
	if len(model.FlagsJSON) > 0 {
		if err := json.Unmarshal(model.FlagsJSON, &record.Flags); err != nil {
			return domain.VerificationRecord{}, err
		}
	}
	return record, nil
}
