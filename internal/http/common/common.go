package common

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"credverify/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Page struct {
	Limit  int
	Offset int
}

func ParsePage(c *gin.Context) Page {
	page := Page{Limit: 20}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			page.Limit = limit
		}
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			page.Offset = offset
		}
	}
	return page
}

func ParseUUIDParam(c *gin.Context, name string) (string, bool) {
	value := strings.TrimSpace(c.Param(name))
	if value == "" {
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" is required")
		return "", false
	}
	if _, err := uuid.Parse(value); err != nil {
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", name+" must be a UUID")
		return "", false
	}
	return value, true
}

type VerificationResponse struct {
	ID                   string                 `json:"id"`
	Filename             string                 `json:"filename"`
	FileHash             string                 `json:"file_hash,omitempty"`
	Status               string                 `json:"status"`
	ConfidenceScore      int                    `json:"confidence_score"`
	MatchedCertificateID string                 `json:"matched_certificate_id,omitempty"`
	ExtractedData        domain.ExtractedFields `json:"extracted_data,omitempty"`
	Flags                []domain.Flag          `json:"flags"`
	CreatedAt            string                 `json:"created_at"`
}

func ToVerificationResponse(record domain.VerificationRecord) VerificationResponse {
	flags := record.Flags
	if flags == nil {
		flags = []domain.Flag{}
	}
	return VerificationResponse{
		ID:                   record.ID,
		Filename:             record.Filename,
		FileHash:             record.FileHash,
		Status:               string(record.Verdict),
		ConfidenceScore:      record.Confidence,
		MatchedCertificateID: record.MatchedCertificateID,
		ExtractedData:        record.Fields,
		Flags:                flags,
		CreatedAt:            record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteErrorCode(c, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, domain.ErrConflict):
		WriteErrorCode(c, http.StatusConflict, "CONFLICT", "conflict")
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid argument")
	default:
		WriteErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func WriteErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}
