package handler

import (
	"errors"
	"fmt"
	"io"

	"hackreg/internal/models"
	"hackreg/internal/service"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler handles HTTP requests for the admin dashboard.
type AdminHandler struct {
	service service.AdminServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service service.AdminServicer) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListTeams godoc
// @Summary      List teams
// @Description  List registered teams, optionally filtered by payment status
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Payment status filter"  Enums(pending, verified, rejected)
// @Success      200     {object}  response.Response{data=models.TeamListResponse}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/teams [get]
func (h *AdminHandler) ListTeams(c *gin.Context) {
	result, err := h.service.ListTeams(c.Request.Context(), models.PaymentStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// GetTeam godoc
// @Summary      Get team details
// @Description  Retrieve a team with its roster and a link to the payment receipt
// @Tags         admin
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response{data=models.TeamWithMembers}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/teams/{teamId} [get]
func (h *AdminHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseObjectID(c, "teamId", "team")
	if !ok {
		return
	}

	team, err := h.service.GetTeamDetails(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, team)
}

// VerifyPayment godoc
// @Summary      Verify a team's payment
// @Description  Move a pending team to verified and email the leader. The body is optional; blank fields are looked up.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        teamId  path      string                       true   "Team ID"
// @Param        body    body      models.VerifyPaymentRequest  false  "Email details"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/teams/{teamId}/verify [post]
func (h *AdminHandler) VerifyPayment(c *gin.Context) {
	teamID, ok := parseObjectID(c, "teamId", "team")
	if !ok {
		return
	}

	var req models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.VerifyTeamPayment(c.Request.Context(), teamID, &req); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"paymentStatus": models.PaymentVerified})
}

// RejectPayment godoc
// @Summary      Reject a team's payment
// @Description  Move a pending team to rejected. No email is sent.
// @Tags         admin
// @Produce      json
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/teams/{teamId}/reject [post]
func (h *AdminHandler) RejectPayment(c *gin.Context) {
	teamID, ok := parseObjectID(c, "teamId", "team")
	if !ok {
		return
	}

	if err := h.service.RejectTeamPayment(c.Request.Context(), teamID); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"paymentStatus": models.PaymentRejected})
}

// Stats godoc
// @Summary      Registration statistics
// @Description  Team counts per payment status plus member and check-in totals
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=models.AdminStats}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, stats)
}

// ExportCSV godoc
// @Summary      Export roster
// @Description  Download one CSV row per member, optionally filtered by payment status
// @Tags         admin
// @Produce      text/csv
// @Param        status  query     string  false  "Payment status filter"  Enums(pending, verified, rejected)
// @Success      200     {string}  string  "CSV file"
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/export.csv [get]
func (h *AdminHandler) ExportCSV(c *gin.Context) {
	status := models.PaymentStatus(c.Query("status"))

	body, err := h.service.ExportRosterCSV(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	response.CSV(c, exportFilename(status), body)
}

func exportFilename(status models.PaymentStatus) string {
	if status == "" {
		return "roster.csv"
	}
	return fmt.Sprintf("roster-%s.csv", status)
}

// parseObjectID reads an ObjectID path parameter, writing a 400 when it is malformed.
func parseObjectID(c *gin.Context, param, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("invalid %s id format", what))
		return primitive.NilObjectID, false
	}
	return id, true
}
