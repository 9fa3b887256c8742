package permission

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

type policyFile struct {
	Inherits []struct {
		Relation string `yaml:"relation"`
		From     string `yaml:"from"`
	} `yaml:"inherits"`
	Grants map[string]map[string][]string `yaml:"grants"`
}

type rule struct {
	relation string
	resource string
	action   string
}

func parsePolicy(data []byte) (*policyFile, error) {
	var pf policyFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return &pf, nil
}

// rules flattens the grant map in a stable order.
func (pf *policyFile) rules() []rule {
	var out []rule
	relations := make([]string, 0, len(pf.Grants))
	for relation := range pf.Grants {
		relations = append(relations, relation)
	}
	sort.Strings(relations)

	for _, relation := range relations {
		resources := make([]string, 0, len(pf.Grants[relation]))
		for resource := range pf.Grants[relation] {
			resources = append(resources, resource)
		}
		sort.Strings(resources)

		for _, resource := range resources {
			for _, action := range pf.Grants[relation][resource] {
				out = append(out, rule{relation: relation, resource: resource, action: action})
			}
		}
	}
	return out
}

func (e *Enforcer) seed() error {
	pf, err := parsePolicy(defaultPolicy)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	added := 0
	for _, r := range pf.rules() {
		ok, err := e.enforcer.AddPolicy(r.relation, r.resource, r.action)
		if err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err,
				"relation", r.relation,
				"resource", r.resource,
				"action", r.action)
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", r.relation, r.resource, r.action, err)
		}
		if ok {
			added++
		}
	}

	for _, inh := range pf.Inherits {
		if _, err := e.enforcer.AddGroupingPolicy(inh.Relation, inh.From); err != nil {
			return fmt.Errorf("failed to add relation inheritance %s -> %s: %w", inh.Relation, inh.From, err)
		}
	}

	if added > 0 {
		e.logger.Infow("permission policies seeded", "added", added)
	}
	return nil
}
