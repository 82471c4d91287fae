package verifications

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"credverify/internal/domain"
	"credverify/internal/extract"
	"credverify/internal/http/common"
	"credverify/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Verifier *usecase.VerifyCertificate
	Reader   usecase.VerificationReader
}

func NewHandler(verifier *usecase.VerifyCertificate, reader usecase.VerificationReader) *Handler {
	return &Handler{Verifier: verifier, Reader: reader}
}

type submitRequest struct {
	Extraction *domain.ExtractionResult `json:"extraction,omitempty"`
	RawText    string                   `json:"raw_text,omitempty"`
	Filename   string                   `json:"filename,omitempty"`
	// ExtractionError lets a client report an upstream extractor failure so
	// the attempt is still logged with an ERROR verdict.
	ExtractionError string `json:"extraction_error,omitempty"`
}

type listResponse struct {
	Items []common.VerificationResponse `json:"items"`
	Total int64                         `json:"total"`
}

// HandleSubmit accepts either a structured extraction result or raw
// document text to scan server-side, and returns the verification result.
func (h *Handler) HandleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	verifyReq := usecase.VerifyCertificateRequest{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	switch {
	case strings.TrimSpace(req.ExtractionError) != "":
		verifyReq.Extraction = domain.ExtractionResult{Filename: req.Filename}
		verifyReq.ExtractionErr = fmt.Errorf("%w: %s", domain.ErrExtractionFailed, strings.TrimSpace(req.ExtractionError))
	case req.Extraction != nil:
		verifyReq.Extraction = *req.Extraction
		if verifyReq.Extraction.Filename == "" {
			verifyReq.Extraction.Filename = req.Filename
		}
	case strings.TrimSpace(req.RawText) != "":
		verifyReq.Extraction = domain.ExtractionResult{
			Fields:       extract.ParseFields(req.RawText),
			ForgeryFlags: extract.ScanForgerySignals(req.RawText),
			FileHash:     extract.HashContent([]byte(req.RawText)),
			Filename:     req.Filename,
		}
	default:
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "extraction or raw_text is required")
		return
	}

	result, err := h.Verifier.Execute(c.Request.Context(), verifyReq)
	if err != nil {
		// The result still carries an ERROR verdict; the error means even
		// the error log could not be written.
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) HandleList(c *gin.Context) {
	page := common.ParsePage(c)
	records, total, err := h.Reader.ListVerifications(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	items := make([]common.VerificationResponse, 0, len(records))
	for _, record := range records {
		items = append(items, common.ToVerificationResponse(record))
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *Handler) HandleGet(c *gin.Context) {
	id, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}
	record, err := h.Reader.GetVerification(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verification": common.ToVerificationResponse(record)})
}

func (h *Handler) HandleStats(c *gin.Context) {
	stats, err := h.Reader.Stats(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type activityResponse struct {
	ID             string `json:"id"`
	VerificationID string `json:"verification_id"`
	ActivityType   string `json:"activity_type"`
	Description    string `json:"description"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func (h *Handler) HandleListSuspicious(c *gin.Context) {
	page := common.ParsePage(c)
	activities, total, err := h.Reader.ListSuspiciousActivities(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	items := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityResponse{
			ID:             activity.ID,
			VerificationID: activity.VerificationID,
			ActivityType:   string(activity.ActivityType),
			Description:    activity.Description,
			Severity:       string(activity.Severity),
			Status:         activity.Status,
			CreatedAt:      activity.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
