package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issueflow/internal/application/ticket/usecases"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

const msgInvalidCommentID = "Invalid comment id"

type CommentHandler struct {
	createCommentUC usecases.CreateCommentExecutor
	listCommentsUC  usecases.ListCommentsExecutor
	getCommentUC    usecases.GetCommentExecutor
	updateCommentUC usecases.UpdateCommentExecutor
	deleteCommentUC usecases.DeleteCommentExecutor
	logger          logger.Interface
}

func NewCommentHandler(
	createCommentUC usecases.CreateCommentExecutor,
	listCommentsUC usecases.ListCommentsExecutor,
	getCommentUC usecases.GetCommentExecutor,
	updateCommentUC usecases.UpdateCommentExecutor,
	deleteCommentUC usecases.DeleteCommentExecutor,
	logger logger.Interface,
) *CommentHandler {
	return &CommentHandler{
		createCommentUC: createCommentUC,
		listCommentsUC:  listCommentsUC,
		getCommentUC:    getCommentUC,
		updateCommentUC: updateCommentUC,
		deleteCommentUC: deleteCommentUC,
		logger:          logger,
	}
}

// CreateComment handles POST /comments
// @Summary Comment on a ticket
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param comment body CreateCommentRequest true "Comment"
// @Success 201 {object} map[string]interface{} "Comment created successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create comment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket_id and text are required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createCommentUC.Execute(c.Request.Context(), usecases.CreateCommentCommand{
		TicketID: req.TicketID,
		Text:     req.Text,
		UserID:   userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, "Comment created successfully", "comment", result)
}

// ListComments handles GET /comments
// @Summary List the comments of a ticket
// @Tags comments
// @Produce json
// @Security Bearer
// @Param ticket_id query string true "Ticket ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /comments [get]
func (h *CommentHandler) ListComments(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticketID, err := utils.RequireQuery(c, "ticket_id", "ticket_id query parameter is required")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), ticketID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "comments", result)
}

// GetComment handles GET /comments/:id
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	userID, commentID, ok := identify(c, msgInvalidCommentID)
	if !ok {
		return
	}

	result, err := h.getCommentUC.Execute(c.Request.Context(), commentID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "comment", result)
}

// UpdateComment handles PUT /comments/:id
// @Summary Edit a comment
// @Description Only the author may edit a comment.
// @Tags comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Comment ID"
// @Param comment body UpdateCommentRequest true "New text"
// @Success 200 {object} map[string]interface{} "Comment updated successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /comments/{id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, commentID, ok := identify(c, msgInvalidCommentID)
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Text is required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateCommentUC.Execute(c.Request.Context(), usecases.UpdateCommentCommand{
		CommentID: commentID,
		Text:      req.Text,
		UserID:    userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Comment updated successfully", "comment", result)
}

// DeleteComment handles DELETE /comments/:id
// @Summary Delete a comment
// @Description Only the author may delete a comment.
// @Tags comments
// @Produce json
// @Security Bearer
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]interface{} "Comment deleted successfully"
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /comments/{id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, commentID, ok := identify(c, msgInvalidCommentID)
	if !ok {
		return
	}

	if err := h.deleteCommentUC.Execute(c.Request.Context(), commentID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Comment deleted successfully")
}
