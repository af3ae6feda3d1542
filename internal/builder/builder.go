package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/graph"
	"github.com/vk/stageforge/internal/model"
	"github.com/vk/stageforge/internal/producers"
)

// SelfUpdateSectionID names the section the builder inserts when
// self-mutation is enabled.
const SelfUpdateSectionID = "UpdatePipeline"

// refIndex maps manifest references ("stack.db", "publish.Images",
// "step.Synth") to the arena keys of the leaves they order against. Stacks
// resolve to their Deploy leaf so a dependent runs after the stack is live.
type refIndex struct {
	// local is keyed by group name, then reference.
	local  map[string]map[string]string
	global map[string]string
	// ambiguous holds references declared in more than one group; such a
	// reference can only be used from within its own group.
	ambiguous map[string]bool
}

func newRefIndex() *refIndex {
	return &refIndex{
		local:     make(map[string]map[string]string),
		global:    make(map[string]string),
		ambiguous: make(map[string]bool),
	}
}

func (ri *refIndex) record(group, ref, key string) {
	if ri.local[group] == nil {
		ri.local[group] = make(map[string]string)
	}
	ri.local[group][ref] = key
	if _, seen := ri.global[ref]; seen {
		ri.ambiguous[ref] = true
		return
	}
	ri.global[ref] = key
}

func (ri *refIndex) resolve(group, ref string) (string, error) {
	if key, ok := ri.local[group][ref]; ok {
		return key, nil
	}
	if ri.ambiguous[ref] {
		return "", fmt.Errorf("ambiguous reference %q in group %q: declared in multiple groups", ref, group)
	}
	if key, ok := ri.global[ref]; ok {
		return key, nil
	}
	return "", fmt.Errorf("unknown reference %q in group %q", ref, group)
}

// Build constructs the dependency graph from the manifest. Step specs are
// resolved through the registry so each runner module controls what its
// steps look like to the scheduler.
func Build(ctx context.Context, manifest *model.Manifest, registry *producers.Registry) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	if len(manifest.Groups) == 0 {
		return nil, fmt.Errorf("manifest defines no deployment groups")
	}

	g := graph.New()
	index := newRefIndex()

	// pending records (groupName, arenaKey, refs) for the second pass.
	type pendingDep struct {
		group string
		key   string
		refs  []string
	}
	var pending []pendingDep

	buildGroup := buildStepGroup(manifest)

	for _, group := range manifest.Groups {
		groupKey, err := g.AddContainer("", group.Name)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group.Name, err)
		}

		for _, stack := range group.Stacks {
			stackKey, err := g.AddContainer(groupKey, stack.Name)
			if err != nil {
				return nil, fmt.Errorf("stack %q in group %q: %w", stack.Name, group.Name, err)
			}
			ref := graph.StackRef{Name: stack.Name}
			prepKey, err := g.AddLeaf(stackKey, "Prepare", graph.PreparePayload{Stack: ref})
			if err != nil {
				return nil, err
			}
			deployKey, err := g.AddLeaf(stackKey, "Deploy", graph.ExecutePayload{
				Stack:          ref,
				CaptureOutputs: stack.CaptureOutputs,
			})
			if err != nil {
				return nil, err
			}
			if err := g.AddDependency(prepKey, deployKey); err != nil {
				return nil, err
			}
			index.record(group.Name, "stack."+stack.Name, deployKey)
			if len(stack.DependsOn) > 0 {
				// A stack's ordering constraint gates its preparation.
				pending = append(pending, pendingDep{group.Name, prepKey, stack.DependsOn})
			}
		}

		for _, pub := range group.Publishes {
			assets, err := publishAssets(pub)
			if err != nil {
				return nil, fmt.Errorf("publish %q in group %q: %w", pub.Name, group.Name, err)
			}
			pubKey, err := g.AddLeaf(groupKey, pub.Name, graph.PublishAssetsPayload{Assets: assets})
			if err != nil {
				return nil, fmt.Errorf("publish %q in group %q: %w", pub.Name, group.Name, err)
			}
			index.record(group.Name, "publish."+pub.Name, pubKey)
			if len(pub.DependsOn) > 0 {
				pending = append(pending, pendingDep{group.Name, pubKey, pub.DependsOn})
			}
		}

		for _, step := range group.Steps {
			env, err := manifest.ResolveEnv(step)
			if err != nil {
				return nil, err
			}
			stepRef, err := registry.Build(step.Runner, producers.StepSpec{
				Name:            step.Name,
				Commands:        step.Commands,
				InstallCommands: step.Install,
				Output:          step.Output,
				Instructions:    step.Instructions,
				Env:             env,
			})
			if err != nil {
				return nil, fmt.Errorf("step %q in group %q: %w", step.Name, group.Name, err)
			}
			stepKey, err := g.AddLeaf(groupKey, step.Name, graph.StepPayload{
				Step:        stepRef,
				IsBuildStep: step.Build,
			})
			if err != nil {
				return nil, fmt.Errorf("step %q in group %q: %w", step.Name, group.Name, err)
			}
			index.record(group.Name, "step."+step.Name, stepKey)
			if len(step.DependsOn) > 0 {
				pending = append(pending, pendingDep{group.Name, stepKey, step.DependsOn})
			}
		}

		if manifest.Pipeline.SelfMutation && group.Name == buildGroup {
			if err := addSelfUpdateSection(g); err != nil {
				return nil, err
			}
		}
	}

	for _, p := range pending {
		for _, ref := range p.refs {
			if !validRef(ref) {
				return nil, fmt.Errorf("malformed reference %q: want stack.<name>, publish.<name> or step.<name>", ref)
			}
			from, err := index.resolve(p.group, ref)
			if err != nil {
				return nil, err
			}
			if err := g.AddDependency(from, p.key); err != nil {
				return nil, fmt.Errorf("dependency %q of %s: %w", ref, p.key, err)
			}
		}
	}

	logger.Debug("Graph built.", "groups", len(manifest.Groups), "self_mutation", manifest.Pipeline.SelfMutation)
	return g, nil
}

// buildStepGroup returns the name of the group holding the first designated
// build step. The self-update section goes right after it, so the pipeline
// refreshes itself before any deployment runs against stale definitions.
// Without a designated build step the first group anchors the section.
func buildStepGroup(manifest *model.Manifest) string {
	for _, group := range manifest.Groups {
		for _, step := range group.Steps {
			if step.Build {
				return group.Name
			}
		}
	}
	return manifest.Groups[0].Name
}

func addSelfUpdateSection(g *graph.Graph) error {
	sectionKey, err := g.AddContainer("", SelfUpdateSectionID)
	if err != nil {
		return fmt.Errorf("self-update section: %w", err)
	}
	if _, err := g.AddLeaf(sectionKey, "SelfMutate", graph.SelfUpdatePayload{}); err != nil {
		return fmt.Errorf("self-update section: %w", err)
	}
	return nil
}

// publishAssets maps the manifest's asset blocks to graph assets, defaulting
// each asset's kind to the publish block's kind.
func publishAssets(pub *model.Publish) ([]graph.Asset, error) {
	if len(pub.Assets) == 0 {
		return nil, fmt.Errorf("declares no assets")
	}
	assets := make([]graph.Asset, 0, len(pub.Assets))
	for _, a := range pub.Assets {
		kind := a.Kind
		if kind == "" {
			kind = pub.Kind
		}
		assets = append(assets, graph.Asset{
			ID:   a.Name,
			Path: a.Path,
			Kind: kind,
			Role: a.Role,
		})
	}
	return assets, nil
}

func validRef(ref string) bool {
	kind, _, ok := strings.Cut(ref, ".")
	if !ok {
		return false
	}
	switch kind {
	case "stack", "publish", "step":
		return true
	}
	return false
}
