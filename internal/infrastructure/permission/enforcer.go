// Package permission wraps a casbin enforcer that answers whether a relation
// (member, creator, author) allows an action on a resource kind.
package permission

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"issueflow/internal/shared/logger"
)

//go:embed model.conf
var modelText string

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewEnforcer builds an enforcer whose policies persist in the casbin_rule
// table of db. The default matrix is seeded on every start; rows that already
// exist are left alone. A nil db keeps policies in memory only.
func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	var enforcer *casbin.Enforcer
	if db != nil {
		adapter, err := gormadapter.NewAdapterByDB(db)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
		}
		enforcer, err = casbin.NewEnforcer(m, adapter)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
		if err := enforcer.LoadPolicy(); err != nil {
			return nil, fmt.Errorf("failed to load policy: %w", err)
		}
	} else {
		enforcer, err = casbin.NewEnforcer(m)
		if err != nil {
			return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
		}
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}

	if err := e.seed(); err != nil {
		return nil, err
	}

	return e, nil
}

// Enforce reports whether relation may perform action on resource.
func (e *Enforcer) Enforce(relation, resource, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(relation, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "relation", relation, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

// Grants returns every (relation, resource, action) rule currently loaded.
func (e *Enforcer) Grants() ([][]string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.enforcer.GetPolicy()
}
