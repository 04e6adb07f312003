package handler

import (
	"errors"

	apperrors "hackreg/internal/errors"
	"hackreg/internal/middleware"
	"hackreg/internal/models"
	"hackreg/internal/service"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles HTTP requests for a leader's own team.
type TeamHandler struct {
	service service.RosterServicer
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service service.RosterServicer) *TeamHandler {
	return &TeamHandler{service: service}
}

// GetMyTeam godoc
// @Summary      Get my team
// @Description  Retrieve the team registered by the caller. Returns registered=false when the caller has no team yet.
// @Tags         teams
// @Produce      json
// @Success      200  {object}  response.Response{data=models.MyTeamResponse}
// @Failure      401  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/me [get]
func (h *TeamHandler) GetMyTeam(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	team, err := h.service.GetMyTeam(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, apperrors.ErrTeamNotFound) {
			response.Success(c, models.MyTeamResponse{Registered: false})
			return
		}
		respondError(c, err)
		return
	}

	response.Success(c, models.MyTeamResponse{Registered: true, Team: team})
}

// UpdateTeam godoc
// @Summary      Update team details
// @Description  Replace the team's track, declared size and roster. Only the team leader may do this.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path      string                    true  "Team ID"
// @Param        body    body      models.UpdateTeamRequest  true  "Team details"
// @Success      200     {object}  response.Response{data=models.TeamWithMembers}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId} [put]
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID, exists := middleware.GetTeamID(c)
	if !exists {
		response.BadRequest(c, "team id not found in context")
		return
	}

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	team, err := h.service.UpdateTeamDetails(c.Request.Context(), middleware.GetIdentity(c), teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, team)
}

// AddMember godoc
// @Summary      Add a team member
// @Description  Add one member to the team. Only the team leader may do this. Teams hold at most 5 members.
// @Tags         teams
// @Accept       json
// @Produce      json
// @Param        teamId  path      string              true  "Team ID"
// @Param        body    body      models.MemberInput  true  "Member details"
// @Success      201     {object}  response.Response{data=models.Member}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Security     BearerAuth
// @Router       /teams/{teamId}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, exists := middleware.GetTeamID(c)
	if !exists {
		response.BadRequest(c, "team id not found in context")
		return
	}

	var req models.MemberInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.service.AddMemberToTeam(c.Request.Context(), middleware.GetIdentity(c), teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, member)
}
