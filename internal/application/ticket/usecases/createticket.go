package usecases

import (
	"context"
	"strings"
	"time"

	"issueflow/internal/application/access"
	"issueflow/internal/application/ticket/dto"
	"issueflow/internal/domain/notification"
	"issueflow/internal/domain/ticket"
	vo "issueflow/internal/domain/ticket/valueobjects"
	"issueflow/internal/shared/db"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
	"issueflow/internal/shared/services/markup"
)

type CreateTicketCommand struct {
	ProjectID       string
	Title           string
	Description     string
	Priority        string
	Status          string
	TicketType      string
	Assignee        *string
	Labels          []string
	DueDate         *time.Time
	StoryPoints     *float64
	Subtasks        []ticket.Subtask
	LinkedTicketIDs []string
	UserID          string
}

type CreateTicketUseCase struct {
	policy     *access.Policy
	ticketRepo ticket.Repository
	txManager  db.Transactor
	notifier   notification.Notifier
	markup     markup.Service
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	policy *access.Policy,
	ticketRepo ticket.Repository,
	txManager db.Transactor,
	notifier notification.Notifier,
	markup markup.Service,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		policy:     policy,
		ticketRepo: ticketRepo,
		txManager:  txManager,
		notifier:   notifier,
		markup:     markup,
		logger:     logger,
	}
}

// Execute creates a ticket numbered max+1 within its project. The number is
// read and the row inserted in one transaction; the unique index on
// (project_id, ticket_number) turns a concurrent collision into a conflict.
func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "project_id", cmd.ProjectID, "user_id", cmd.UserID)

	if strings.TrimSpace(cmd.Title) == "" || cmd.ProjectID == "" {
		return nil, errors.NewValidationError("Title and project_id are required")
	}
	if cmd.Status != "" && !vo.TicketStatus(cmd.Status).IsValid() {
		return nil, errors.NewValidationError("Invalid status value")
	}
	if cmd.TicketType != "" && !vo.TicketType(cmd.TicketType).IsValid() {
		return nil, errors.NewValidationError("Invalid ticket type")
	}

	p, err := uc.policy.LoadProject(ctx, cmd.ProjectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}
	if p.IsTrashed() {
		return nil, errors.NewNotFoundError(msgProjectNotFound)
	}

	if _, err := uc.policy.RequireMember(ctx, access.Check{
		ProjectID: cmd.ProjectID,
		UserID:    cmd.UserID,
		Resource:  access.ResourceTicket,
		Action:    access.ActionCreate,
		Denied:    msgProjectAccessDenied,
	}); err != nil {
		return nil, err
	}

	t, err := ticket.NewTicket(ticket.NewTicketParams{
		ProjectID:       cmd.ProjectID,
		Title:           cmd.Title,
		Description:     cmd.Description,
		Priority:        cmd.Priority,
		Status:          cmd.Status,
		TicketType:      cmd.TicketType,
		Assignee:        cmd.Assignee,
		Labels:          cmd.Labels,
		DueDate:         cmd.DueDate,
		StoryPoints:     cmd.StoryPoints,
		Subtasks:        cmd.Subtasks,
		LinkedTicketIDs: cmd.LinkedTicketIDs,
		CreatedBy:       cmd.UserID,
	})
	if err != nil {
		return nil, toAppError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.ticketRepo.NextNumber(txCtx, cmd.ProjectID)
		if err != nil {
			return err
		}
		if err := t.SetNumber(number); err != nil {
			return err
		}
		return uc.ticketRepo.Create(txCtx, t)
	})
	if err != nil {
		if errors.IsDuplicateError(err) {
			uc.logger.Warnw("ticket number collision", "project_id", cmd.ProjectID, "error", err)
			return nil, errors.NewConflictError("Another ticket was created at the same time. Please try again.")
		}
		uc.logger.Errorw("failed to create ticket", "project_id", cmd.ProjectID, "error", err)
		return nil, errors.NewInternalError("Failed to create ticket")
	}

	if t.Assignee() != nil && !t.IsAssignedTo(cmd.UserID) {
		notifyAssigned(ctx, uc.notifier, t, p.Title(), cmd.UserID)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", t.ID(), "ticket_number", t.Number())
	return dto.ToTicketDTO(t, uc.markup), nil
}
