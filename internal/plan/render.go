package plan

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlPlan mirrors Plan with stable, marshal-friendly field names.
type yamlPlan struct {
	Pipeline string       `yaml:"pipeline"`
	Handle   string       `yaml:"handle"`
	Capacity int          `yaml:"capacity"`
	Stages   []yamlStage  `yaml:"stages"`
	Grants   []yamlGrant  `yaml:"credentialGrants,omitempty"`
	Synth    *yamlProject `yaml:"synthProject,omitempty"`
}

type yamlStage struct {
	Name    string       `yaml:"name"`
	Actions []yamlAction `yaml:"actions"`
}

type yamlAction struct {
	Name     string `yaml:"name"`
	RunOrder int    `yaml:"runOrder"`
	Slots    int    `yaml:"slots,omitempty"`
	Category string `yaml:"category,omitempty"`
	Identity string `yaml:"identity,omitempty"`
}

type yamlGrant struct {
	Provider string `yaml:"provider"`
	Category string `yaml:"category"`
}

type yamlProject struct {
	Name     string `yaml:"name"`
	Identity string `yaml:"identity"`
}

// RenderYAML renders the finalized plan as a YAML document.
func (p *Plan) RenderYAML() ([]byte, error) {
	handle, err := p.Handle()
	if err != nil {
		return nil, fmt.Errorf("cannot render plan: %w", err)
	}

	doc := yamlPlan{
		Pipeline: p.Name,
		Handle:   handle,
		Capacity: p.Capacity,
	}
	for _, stage := range p.Stages {
		ys := yamlStage{Name: stage.Name}
		for _, a := range stage.Actions {
			ya := yamlAction{
				Name:     a.Name,
				RunOrder: a.RunOrder,
				Category: a.Category,
			}
			if a.RunOrdersConsumed > 1 {
				ya.Slots = a.RunOrdersConsumed
			}
			if a.ComputeIdentity != nil {
				ya.Identity = a.ComputeIdentity.Name
			}
			ys.Actions = append(ys.Actions, ya)
		}
		doc.Stages = append(doc.Stages, ys)
	}
	for _, g := range p.Grants {
		doc.Grants = append(doc.Grants, yamlGrant{Provider: g.Provider, Category: g.Category})
	}
	if synth, err := p.SynthIdentity(); err == nil && synth != nil {
		doc.Synth = &yamlProject{Name: synth.Name, Identity: synth.Handle}
	}

	return yaml.Marshal(doc)
}
