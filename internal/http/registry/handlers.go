package registry

import (
	"net/http"
	"time"

	"credverify/internal/domain"
	"credverify/internal/http/common"
	"credverify/internal/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Registry usecase.RegistryAdmin
}

func NewHandler(registry usecase.RegistryAdmin) *Handler {
	return &Handler{Registry: registry}
}

type institutionRequest struct {
	Name            string `json:"name"`
	Code            string `json:"code"`
	Type            string `json:"type"`
	Address         string `json:"address,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	EstablishedYear int    `json:"established_year,omitempty"`
}

type institutionResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Type            string `json:"type"`
	Address         string `json:"address,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	EstablishedYear int    `json:"established_year,omitempty"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
}

func (h *Handler) HandleCreateInstitution(c *gin.Context) {
	var req institutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.Name == "" || req.Code == "" || req.Type == "" {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "name, code, type are required")
		return
	}
	inst, err := h.Registry.CreateInstitution(c.Request.Context(), domain.Institution{
		Name:            req.Name,
		Code:            req.Code,
		Type:            req.Type,
		Address:         req.Address,
		ContactEmail:    req.ContactEmail,
		Phone:           req.Phone,
		EstablishedYear: req.EstablishedYear,
		IsActive:        true,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"institution": toInstitutionResponse(inst)})
}

func (h *Handler) HandleListInstitutions(c *gin.Context) {
	institutions, err := h.Registry.ListInstitutions(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	items := make([]institutionResponse, 0, len(institutions))
	for _, inst := range institutions {
		items = append(items, toInstitutionResponse(inst))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type certificateRequest struct {
	CertificateNumber string   `json:"certificate_number"`
	StudentName       string   `json:"student_name"`
	RollNumber        string   `json:"roll_number,omitempty"`
	CourseName        string   `json:"course_name"`
	DegreeType        string   `json:"degree_type"`
	PassingYear       int      `json:"passing_year"`
	Grade             string   `json:"grade,omitempty"`
	Percentage        *float64 `json:"percentage,omitempty"`
	IssueDate         string   `json:"issue_date"`
	InstitutionID     string   `json:"institution_id"`
}

type certificateResponse struct {
	ID                string   `json:"id"`
	CertificateNumber string   `json:"certificate_number"`
	StudentName       string   `json:"student_name"`
	RollNumber        string   `json:"roll_number,omitempty"`
	CourseName        string   `json:"course_name"`
	DegreeType        string   `json:"degree_type"`
	PassingYear       int      `json:"passing_year"`
	Grade             string   `json:"grade,omitempty"`
	Percentage        *float64 `json:"percentage,omitempty"`
	IssueDate         string   `json:"issue_date"`
	InstitutionID     string   `json:"institution_id"`
	InstitutionName   string   `json:"institution_name,omitempty"`
}

func (h *Handler) HandleCreateCertificate(c *gin.Context) {
	var req certificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if req.CertificateNumber == "" || req.StudentName == "" || req.CourseName == "" || req.InstitutionID == "" {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT",
			"certificate_number, student_name, course_name, institution_id are required")
		return
	}
	issueDate, err := time.Parse("2006-01-02", req.IssueDate)
	if err != nil {
		common.WriteErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", "issue_date must be YYYY-MM-DD")
		return
	}
	cert, err := h.Registry.CreateCertificate(c.Request.Context(), domain.Certificate{
		CertificateNumber: req.CertificateNumber,
		StudentName:       req.StudentName,
		RollNumber:        req.RollNumber,
		CourseName:        req.CourseName,
		DegreeType:        req.DegreeType,
		PassingYear:       req.PassingYear,
		Grade:             req.Grade,
		Percentage:        req.Percentage,
		IssueDate:         issueDate,
		InstitutionID:     req.InstitutionID,
	})
	if err != nil {
		common.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"certificate": toCertificateResponse(cert)})
}

func (h *Handler) HandleListCertificates(c *gin.Context) {
	page := common.ParsePage(c)
	certs, total, err := h.Registry.ListCertificatesPage(c.Request.Context(), page.Limit, page.Offset)
	if err != nil {
		common.WriteError(c, err)
		return
	}
	items := make([]certificateResponse, 0, len(certs))
	for _, cert := range certs {
		items = append(items, toCertificateResponse(cert))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}

func toInstitutionResponse(inst domain.Institution) institutionResponse {
	return institutionResponse{
		ID:              inst.ID,
		Name:            inst.Name,
		Code:            inst.Code,
		Type:            inst.Type,
		Address:         inst.Address,
		ContactEmail:    inst.ContactEmail,
		Phone:           inst.Phone,
		EstablishedYear: inst.EstablishedYear,
		IsActive:        inst.IsActive,
		CreatedAt:       inst.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toCertificateResponse(cert domain.Certificate) certificateResponse {
	return certificateResponse{
		ID:                cert.ID,
		CertificateNumber: cert.CertificateNumber,
		StudentName:       cert.StudentName,
		RollNumber:        cert.RollNumber,
		CourseName:        cert.CourseName,
		DegreeType:        cert.DegreeType,
		PassingYear:       cert.PassingYear,
		Grade:             cert.Grade,
		Percentage:        cert.Percentage,
		IssueDate:         cert.IssueDate.UTC().Format("2006-01-02"),
		InstitutionID:     cert.InstitutionID,
		InstitutionName:   cert.InstitutionName,
	}
}
