package ticket

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"issueflow/internal/application/ticket/usecases"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

const msgInvalidTicketID = "Invalid ticket id"

type TicketHandler struct {
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	statsUC        usecases.GetTicketStatsExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	statsUC usecases.GetTicketStatsExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		updateTicketUC: updateTicketUC,
		deleteTicketUC: deleteTicketUC,
		statsUC:        statsUC,
		logger:         logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Description Create a ticket in a project the caller belongs to. An unknown priority falls back to medium; an unknown status is rejected.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} map[string]interface{} "Ticket created successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd, err := req.ToCommand(userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, "Ticket created successfully", "ticket", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param project_id query string true "Project ID"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param ticket_type query string false "Type filter"
// @Param assignee query string false "Assignee filter"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req := parseListTicketsRequest(c)
	result, err := h.listTicketsUC.Execute(c.Request.Context(), req.ToQuery(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "tickets", result)
}

// GetTicketStats handles GET /tickets/stats
// @Summary Ticket counts of a project
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param project_id query string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /tickets/stats [get]
func (h *TicketHandler) GetTicketStats(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	projectID, err := utils.RequireQuery(c, "project_id", "project_id query parameter is required")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.statsUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "stats", result)
}

// GetTicket handles GET /tickets/:id
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [get]
func (h *TicketHandler) GetTicket(c *gin.Context) {
	userID, ticketID, ok := identify(c, msgInvalidTicketID)
	if !ok {
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), ticketID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "ticket", result)
}

// UpdateTicket handles PUT /tickets/:id
// @Summary Update a ticket
// @Description Only the keys present in the body change. null clears assignee, due_date and story_points.
// @Tags tickets
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Param ticket body UpdateTicketRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Ticket updated successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [put]
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	userID, ticketID, ok := identify(c, msgInvalidTicketID)
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "ticket_id", ticketID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	patch, err := decodeTicketPatch(body)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), usecases.UpdateTicketCommand{
		TicketID: ticketID,
		UserID:   userID,
		Patch:    patch,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", "ticket", result)
}

// DeleteTicket handles DELETE /tickets/:id
// @Summary Delete a ticket and its comments
// @Tags tickets
// @Produce json
// @Security Bearer
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string]interface{} "Ticket deleted successfully"
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /tickets/{id} [delete]
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	userID, ticketID, ok := identify(c, msgInvalidTicketID)
	if !ok {
		return
	}

	if err := h.deleteTicketUC.Execute(c.Request.Context(), ticketID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Ticket deleted successfully")
}

// identify resolves the caller and the :id path parameter, answering the
// request itself when either is missing.
func identify(c *gin.Context, invalidID string) (userID, resourceID string, ok bool) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	resourceID, err = utils.RequireParam(c, "id", invalidID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	return userID, resourceID, true
}
