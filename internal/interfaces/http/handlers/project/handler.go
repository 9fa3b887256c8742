package project

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"issueflow/internal/application/project/usecases"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/utils"
)

const msgInvalidProjectID = "Invalid project id"

type Handler struct {
	createProjectUC  usecases.CreateProjectExecutor
	listProjectsUC   usecases.ListProjectsExecutor
	listDeletedUC    usecases.ListDeletedProjectsExecutor
	getProjectUC     usecases.GetProjectExecutor
	updateProjectUC  usecases.UpdateProjectExecutor
	trashProjectUC   usecases.TrashProjectExecutor
	restoreProjectUC usecases.RestoreProjectExecutor
	purgeProjectUC   usecases.PurgeProjectExecutor
	inviteMemberUC   usecases.InviteMemberExecutor
	addMemberUC      usecases.AddMemberExecutor
	listMembersUC    usecases.ListMembersExecutor
	toggleStarUC     usecases.ToggleStarExecutor
	logger           logger.Interface
}

// UseCases bundles the executors the handler dispatches to.
type UseCases struct {
	CreateProject  usecases.CreateProjectExecutor
	ListProjects   usecases.ListProjectsExecutor
	ListDeleted    usecases.ListDeletedProjectsExecutor
	GetProject     usecases.GetProjectExecutor
	UpdateProject  usecases.UpdateProjectExecutor
	TrashProject   usecases.TrashProjectExecutor
	RestoreProject usecases.RestoreProjectExecutor
	PurgeProject   usecases.PurgeProjectExecutor
	InviteMember   usecases.InviteMemberExecutor
	AddMember      usecases.AddMemberExecutor
	ListMembers    usecases.ListMembersExecutor
	ToggleStar     usecases.ToggleStarExecutor
}

func NewHandler(uc UseCases, logger logger.Interface) *Handler {
	return &Handler{
		createProjectUC:  uc.CreateProject,
		listProjectsUC:   uc.ListProjects,
		listDeletedUC:    uc.ListDeleted,
		getProjectUC:     uc.GetProject,
		updateProjectUC:  uc.UpdateProject,
		trashProjectUC:   uc.TrashProject,
		restoreProjectUC: uc.RestoreProject,
		purgeProjectUC:   uc.PurgeProject,
		inviteMemberUC:   uc.InviteMember,
		addMemberUC:      uc.AddMember,
		listMembersUC:    uc.ListMembers,
		toggleStarUC:     uc.ToggleStar,
		logger:           logger,
	}
}

// CreateProject handles POST /projects
// @Summary Create a project
// @Description Create a project; the caller becomes its creator and first member
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param project body CreateProjectRequest true "Project data"
// @Success 201 {object} map[string]interface{} "Project created successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /projects [post]
func (h *Handler) CreateProject(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create project", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createProjectUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, "Project created successfully", "project", result)
}

// ListProjects handles GET /projects
// @Summary List active projects
// @Description List the caller's active projects with their starred flag
// @Tags projects
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /projects [get]
func (h *Handler) ListProjects(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listProjectsUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "projects", result)
}

// ListDeletedProjects handles GET /projects/deleted
// @Summary List trashed projects
// @Description List the projects the caller created and moved to trash
// @Tags projects
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorBody
// @Router /projects/deleted [get]
func (h *Handler) ListDeletedProjects(c *gin.Context) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listDeletedUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "projects", result)
}

// GetProject handles GET /projects/:id
// @Summary Get a project
// @Description Fetch one project with member and ticket counts
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /projects/{id} [get]
func (h *Handler) GetProject(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.getProjectUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "project", result)
}

// UpdateProject handles PUT /projects/:id
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Param project body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} map[string]interface{} "Project updated successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /projects/{id} [put]
func (h *Handler) UpdateProject(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update project", "project_id", projectID, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	result, err := h.updateProjectUC.Execute(c.Request.Context(), req.ToCommand(projectID, userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated successfully", "project", result)
}

// TrashProject handles DELETE /projects/:id
// @Summary Move a project to trash
// @Description Soft-delete a project. Creator only.
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{} "Project moved to trash"
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /projects/{id} [delete]
func (h *Handler) TrashProject(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.trashProjectUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project moved to trash", "project", result)
}

// RestoreProject handles POST /projects/:id/restore
// @Summary Restore a trashed project
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{} "Project restored"
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /projects/{id}/restore [post]
func (h *Handler) RestoreProject(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.restoreProjectUC.Execute(c.Request.Context(), projectID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Project restored")
}

// PurgeProject handles POST /projects/:id/permanent-delete
// @Summary Permanently delete a trashed project
// @Description Removes the project with its tickets, comments and memberships. The project must be in trash.
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{} "Project permanently deleted"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /projects/{id}/permanent-delete [post]
func (h *Handler) PurgeProject(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	if err := h.purgeProjectUC.Execute(c.Request.Context(), projectID, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.MessageResponse(c, "Project permanently deleted")
}

// InviteMember handles POST /projects/:id/invite
// @Summary Invite a member by email
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Param invite body InviteMemberRequest true "Invitee email"
// @Success 201 {object} map[string]interface{} "Member invited successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Failure 404 {object} utils.ErrorBody
// @Router /projects/{id}/invite [post]
func (h *Handler) InviteMember(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Valid email is required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.inviteMemberUC.Execute(c.Request.Context(), usecases.InviteMemberCommand{
		ProjectID: projectID,
		UserID:    userID,
		Email:     req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Member invited successfully",
		"member":  result,
		"email":   result.Email,
	})
}

// AddMember handles POST /projects/:id/members
// @Summary Add a member by user id
// @Tags projects
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Param member body AddMemberRequest true "User to add"
// @Success 201 {object} map[string]interface{} "Member added successfully"
// @Failure 400 {object} utils.ErrorBody
// @Failure 403 {object} utils.ErrorBody
// @Router /projects/{id}/members [post]
func (h *Handler) AddMember(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("user_id is required"))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addMemberUC.Execute(c.Request.Context(), usecases.AddMemberCommand{
		ProjectID:    projectID,
		UserID:       userID,
		MemberUserID: req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, "Member added successfully", "member", result)
}

// ListMembers handles GET /projects/:id/members
// @Summary List project members
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorBody
// @Router /projects/{id}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	result, err := h.listMembersUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, "members", result)
}

// ToggleStar handles POST /projects/:id/star
// @Summary Toggle the caller's favorite flag
// @Tags projects
// @Produce json
// @Security Bearer
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorBody
// @Router /projects/{id}/star [post]
func (h *Handler) ToggleStar(c *gin.Context) {
	userID, projectID, ok := h.identify(c)
	if !ok {
		return
	}

	starred, err := h.toggleStarUC.Execute(c.Request.Context(), projectID, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Project unstarred"
	if starred {
		message = "Project starred"
	}
	utils.JSONResponse(c, gin.H{"message": message, "is_starred": starred})
}

// identify resolves the caller and the :id path parameter, answering the
// request itself when either is missing.
func (h *Handler) identify(c *gin.Context) (userID, projectID string, ok bool) {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	projectID, err = utils.RequireParam(c, "id", msgInvalidProjectID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", "", false
	}
	return userID, projectID, true
}
