package handler

import (
	"hackreg/internal/models"
	"hackreg/internal/service"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckInHandler handles HTTP requests from the event-day check-in desk.
type CheckInHandler struct {
	service service.CheckInServicer
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(service service.CheckInServicer) *CheckInHandler {
	return &CheckInHandler{service: service}
}

// ToggleCheckIn godoc
// @Summary      Toggle a member's check-in
// @Description  Set the member's check-in flag to the negation of the status the operator saw
// @Tags         check-in
// @Accept       json
// @Produce      json
// @Param        memberId  path      string                 true  "Member ID"
// @Param        body      body      models.CheckInRequest  true  "Status shown to the operator"
// @Success      200       {object}  response.Response{data=models.Member}
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      500       {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/members/{memberId}/check-in [post]
func (h *CheckInHandler) ToggleCheckIn(c *gin.Context) {
	memberID, ok := parseObjectID(c, "memberId", "member")
	if !ok {
		return
	}

	var req models.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "currentStatus is required")
		return
	}

	member, err := h.service.ToggleCheckIn(c.Request.Context(), memberID, *req.CurrentStatus)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, member)
}

// FindMember godoc
// @Summary      Find a member by email
// @Description  Look up a participant at the check-in desk
// @Tags         check-in
// @Produce      json
// @Param        email  query     string  true  "Member email"
// @Success      200    {object}  response.Response{data=models.Member}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Security     BearerAuth
// @Router       /admin/members [get]
func (h *CheckInHandler) FindMember(c *gin.Context) {
	member, err := h.service.FindMemberByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, member)
}
