package handler

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"hackreg/internal/middleware"
	"hackreg/internal/models"
	"hackreg/internal/service"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// Multipart form field names for a registration.
const (
	PayloadField = "payload"
	ReceiptField = "receipt"
)

// RegistrationHandler handles HTTP requests for team registration.
type RegistrationHandler struct {
	service service.RegistrationServicer
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(service service.RegistrationServicer) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// RegisterTeam godoc
// @Summary      Register a team
// @Description  Register a team with its roster and payment receipt. The caller becomes the team leader.
// @Tags         registrations
// @Accept       multipart/form-data
// @Produce      json
// @Param        payload  formData  string  true  "Registration JSON (models.RegistrationRequest)"
// @Param        receipt  formData  file    true  "Payment receipt (JPEG, PNG or PDF, max 4MB)"
// @Success      201      {object}  response.Response{data=models.RegistrationResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      502      {object}  response.Response
// @Security     BearerAuth
// @Router       /registrations [post]
func (h *RegistrationHandler) RegisterTeam(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	if identity.IsZero() {
		response.Unauthorized(c, "user not authenticated")
		return
	}

	payload := c.PostForm(PayloadField)
	if payload == "" {
		response.BadRequest(c, "payload is required")
		return
	}

	var req models.RegistrationRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		response.BadRequest(c, "invalid payload: "+err.Error())
		return
	}

	if header, err := c.FormFile(ReceiptField); err == nil {
		receipt, err := readReceipt(header)
		if err != nil {
			response.BadRequest(c, "could not read receipt: "+err.Error())
			return
		}
		req.Receipt = receipt
	}

	result, err := h.service.RegisterTeam(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, result)
}

// readReceipt loads an uploaded file into memory. At most one byte past the
// size limit is read so oversized files still fail validation on size.
func readReceipt(header *multipart.FileHeader) (*models.ReceiptFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, models.MaxReceiptSize+1))
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &models.ReceiptFile{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        data,
	}, nil
}
