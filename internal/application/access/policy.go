// Package access centralizes the membership and ownership checks that gate
// every project, ticket and comment operation.
//
// RequireMember may write: when the project creator has lost their
// membership row it is recreated on the spot, so a read request can insert.
package access

import (
	"context"

	"issueflow/internal/domain/project"
	"issueflow/internal/shared/errors"
	"issueflow/internal/shared/logger"
)

type Relation string

const (
	RelationMember  Relation = "member"
	RelationCreator Relation = "creator"
	RelationAuthor  Relation = "author"
)

type Resource string

const (
	ResourceProject Resource = "project"
	ResourceTicket  Resource = "ticket"
	ResourceComment Resource = "comment"
)

type Action string

const (
	ActionCreate      Action = "create"
	ActionRead        Action = "read"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionStats       Action = "stats"
	ActionStar        Action = "star"
	ActionListMembers Action = "list_members"
	ActionTrash       Action = "trash"
	ActionRestore     Action = "restore"
	ActionPurge       Action = "purge"
	ActionInvite      Action = "invite"
	ActionAddMember   Action = "add_member"
)

const msgProjectNotFound = "Project not found"

// Authorizer answers whether a relation may perform an action on a resource kind.
type Authorizer interface {
	Enforce(relation, resource, action string) (bool, error)
}

// Check describes one membership-gated operation.
type Check struct {
	ProjectID string
	UserID    string
	Resource  Resource
	Action    Action
	// Denied is the forbidden message returned to non-members.
	Denied string
}

// Membership is the result of a successful RequireMember.
type Membership struct {
	Project *project.Project
	Member  *project.Member
}

type Policy struct {
	projectRepo project.Repository
	memberRepo  project.MemberRepository
	authorizer  Authorizer
	logger      logger.Interface
}

func NewPolicy(
	projectRepo project.Repository,
	memberRepo project.MemberRepository,
	authorizer Authorizer,
	logger logger.Interface,
) *Policy {
	return &Policy{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// LoadProject returns the project or a 404 with notFound as its message.
func (p *Policy) LoadProject(ctx context.Context, projectID, notFound string) (*project.Project, error) {
	proj, err := p.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		p.logger.Errorw("failed to load project", "project_id", projectID, "error", err)
		return nil, errors.NewInternalError("Failed to fetch project")
	}
	if proj == nil {
		return nil, errors.NewNotFoundError(notFound)
	}
	return proj, nil
}

// RequireMember grants access to members of the project. A creator without a
// membership row gets one inserted and is let through.
func (p *Policy) RequireMember(ctx context.Context, chk Check) (*Membership, error) {
	proj, err := p.LoadProject(ctx, chk.ProjectID, msgProjectNotFound)
	if err != nil {
		return nil, err
	}

	member, err := p.memberRepo.Get(ctx, chk.ProjectID, chk.UserID)
	if err != nil {
		p.logger.Errorw("failed to load membership", "project_id", chk.ProjectID, "user_id", chk.UserID, "error", err)
		return nil, errors.NewInternalError("Failed to verify project access")
	}

	if member == nil {
		if !proj.IsCreator(chk.UserID) {
			return nil, errors.NewForbiddenError(chk.Denied)
		}
		member, err = p.healCreatorMembership(ctx, proj)
		if err != nil {
			return nil, err
		}
	}

	if err := p.Authorize(RelationMember, chk.Resource, chk.Action, chk.Denied); err != nil {
		return nil, err
	}

	return &Membership{Project: proj, Member: member}, nil
}

func (p *Policy) healCreatorMembership(ctx context.Context, proj *project.Project) (*project.Member, error) {
	p.logger.Warnw("creator membership missing, restoring it", "project_id", proj.ID(), "user_id", proj.CreatedBy())

	member, err := project.NewMember(proj.ID(), proj.CreatedBy())
	if err != nil {
		return nil, errors.NewInternalError("Failed to verify project access")
	}

	if err := p.memberRepo.Create(ctx, member); err != nil {
		if !errors.IsDuplicateError(err) {
			p.logger.Errorw("failed to restore creator membership", "project_id", proj.ID(), "error", err)
			return nil, errors.NewInternalError("Failed to verify project access")
		}
		// A concurrent request inserted it first.
		existing, getErr := p.memberRepo.Get(ctx, proj.ID(), proj.CreatedBy())
		if getErr != nil || existing == nil {
			return nil, errors.NewInternalError("Failed to verify project access")
		}
		return existing, nil
	}

	return member, nil
}

// RequireOwner compares ids literally. There is no delegation or admin override.
func (p *Policy) RequireOwner(ownerID, userID, message string) error {
	if ownerID == "" || ownerID != userID {
		return errors.NewForbiddenError(message)
	}
	return nil
}

// RequireCreator allows only the project creator to perform action on it.
func (p *Policy) RequireCreator(proj *project.Project, userID string, action Action, message string) error {
	if err := p.RequireOwner(proj.CreatedBy(), userID, message); err != nil {
		return err
	}
	return p.Authorize(RelationCreator, ResourceProject, action, message)
}

// RequireAuthor allows only the comment author to perform action on it.
func (p *Policy) RequireAuthor(authorID, userID string, action Action, message string) error {
	if err := p.RequireOwner(authorID, userID, message); err != nil {
		return err
	}
	return p.Authorize(RelationAuthor, ResourceComment, action, message)
}

// Authorize consults the relation matrix.
func (p *Policy) Authorize(relation Relation, resource Resource, action Action, denied string) error {
	allowed, err := p.authorizer.Enforce(string(relation), string(resource), string(action))
	if err != nil {
		return errors.NewInternalError("Failed to verify permissions")
	}
	if !allowed {
		p.logger.Warnw("action not permitted", "relation", relation, "resource", resource, "action", action)
		return errors.NewForbiddenError(denied)
	}
	return nil
}
