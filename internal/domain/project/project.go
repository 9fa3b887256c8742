package project

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"issueflow/internal/shared/biztime"
	"issueflow/internal/shared/id"
)

const (
	maxTitleLength = 200
	maxKeyLength   = 10
	defaultKeyLen  = 3
)

// State is the lifecycle position of a project. Purged projects have no row,
// so they never appear as a State value.
type State string

const (
	StateActive  State = "active"
	StateTrashed State = "trashed"
)

var (
	ErrNotInTrash     = errors.New("project is not in trash")
	ErrNotTrashed     = errors.New("project must be trashed before it can be purged")
	ErrTitleRequired  = errors.New("title is required")
	ErrTitleTooLong   = fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	ErrKeyTooLong     = fmt.Errorf("project key exceeds maximum length of %d characters", maxKeyLength)
	ErrCreatorMissing = errors.New("creator ID is required")
)

var upper = cases.Upper(language.Und)

type Project struct {
	id          string
	title       string
	description *string
	projectKey  string
	createdBy   string
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

// NewProject creates an active project. An empty key is derived from the title.
func NewProject(title string, description *string, projectKey string, createdBy string) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, ErrTitleTooLong
	}
	if createdBy == "" {
		return nil, ErrCreatorMissing
	}

	key := normalizeKey(projectKey)
	if key == "" {
		key = DefaultKey(title)
	}
	if len([]rune(key)) > maxKeyLength {
		return nil, ErrKeyTooLong
	}

	now := biztime.NowUTC()
	return &Project{
		id:          id.New(),
		title:       title,
		description: normalizeDescription(description),
		projectKey:  key,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructProject rebuilds a project from persistence without validation side effects.
func ReconstructProject(
	projectID string,
	title string,
	description *string,
	projectKey string,
	createdBy string,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) (*Project, error) {
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}
	if createdBy == "" {
		return nil, ErrCreatorMissing
	}

	return &Project{
		id:          projectID,
		title:       title,
		description: description,
		projectKey:  projectKey,
		createdBy:   createdBy,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}, nil
}

// DefaultKey is the first three characters of the title, uppercased.
func DefaultKey(title string) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) > defaultKeyLen {
		runes = runes[:defaultKeyLen]
	}
	return upper.String(string(runes))
}

func normalizeKey(key string) string {
	return upper.String(strings.TrimSpace(key))
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	d := strings.TrimSpace(*description)
	return &d
}

func (p *Project) ID() string {
	return p.id
}

func (p *Project) Title() string {
	return p.title
}

func (p *Project) Description() *string {
	return p.description
}

func (p *Project) ProjectKey() string {
	return p.projectKey
}

func (p *Project) CreatedBy() string {
	return p.createdBy
}

func (p *Project) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Project) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Project) DeletedAt() *time.Time {
	return p.deletedAt
}

func (p *Project) State() State {
	if p.deletedAt != nil {
		return StateTrashed
	}
	return StateActive
}

func (p *Project) IsTrashed() bool {
	return p.deletedAt != nil
}

// IsCreator is literal id equality; there is no delegation.
func (p *Project) IsCreator(userID string) bool {
	return userID != "" && p.createdBy == userID
}

// Update applies a partial change. Nil fields are left untouched and a
// rejected change leaves the project as it was.
func (p *Project) Update(title, description, projectKey *string) error {
	newTitle := p.title
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		if newTitle == "" {
			return ErrTitleRequired
		}
		if len([]rune(newTitle)) > maxTitleLength {
			return ErrTitleTooLong
		}
	}

	newKey := p.projectKey
	if projectKey != nil {
		newKey = normalizeKey(*projectKey)
		if newKey == "" {
			newKey = DefaultKey(newTitle)
		}
		if len([]rune(newKey)) > maxKeyLength {
			return ErrKeyTooLong
		}
	}

	p.title = newTitle
	p.projectKey = newKey
	if description != nil {
		p.description = normalizeDescription(description)
	}
	p.updatedAt = biztime.NowUTC()
	return nil
}

// Trash moves the project to the trash. Trashing twice re-stamps deleted_at.
func (p *Project) Trash() {
	now := biztime.NowUTC()
	p.deletedAt = &now
	p.updatedAt = now
}

// Restore returns a trashed project to active.
func (p *Project) Restore() error {
	if p.deletedAt == nil {
		return ErrNotInTrash
	}
	p.deletedAt = nil
	p.updatedAt = biztime.NowUTC()
	return nil
}

// EnsurePurgeable rejects purging an active project; only Trashed -> Purged exists.
func (p *Project) EnsurePurgeable() error {
	if p.deletedAt == nil {
		return ErrNotTrashed
	}
	return nil
}
