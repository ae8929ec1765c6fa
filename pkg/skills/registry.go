package skills

import (
	"fmt"
	"sort"
)

// Registry holds the available skills keyed by name.
type Registry struct {
	skills map[string]Skill
}

func NewRegistry(skills ...Skill) *Registry {
	r := &Registry{skills: make(map[string]Skill, len(skills))}
	for _, s := range skills {
		r.skills[s.Name()] = s
	}
	return r
}

// Get returns the named skill.
func (r *Registry) Get(name string) (Skill, error) {
	s, ok := r.skills[name]
	if !ok {
		return nil, fmt.Errorf("unknown skill: %s", name)
	}
	return s, nil
}

// List returns skill metadata, name-ordered.
func (r *Registry) List() []Info {
	infos := make([]Info, 0, len(r.skills))
	for _, s := range r.skills {
		infos = append(infos, Info{Name: s.Name(), Description: s.Description()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
