package builder

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stageforge/internal/graph"
	"github.com/vk/stageforge/internal/model"
	"github.com/vk/stageforge/internal/producers"
)

func loadManifest(t *testing.T, content string) *model.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	m, err := model.Load(context.Background(), path)
	require.NoError(t, err)
	return m
}

func newRegistry() *producers.Registry {
	r := producers.NewRegistry()
	r.Register("shell", producers.NewShellStep)
	r.Register("approval", producers.NewApprovalStep)
	return r
}

func sectionIDs(g *graph.Graph) []string {
	var ids []string
	for _, s := range g.Sections() {
		ids = append(ids, s.ID())
	}
	return ids
}

func TestBuildBasicPipeline(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name          = "demo"
  self_mutation = true
}

group "Build" {
  step "Synth" {
    runner   = "shell"
    build    = true
    commands = ["make synth"]
  }
}

group "Prod" {
  stack "db" {}

  publish "Images" {
    kind = "image"
    asset "api" {
      path = "images/api"
    }
  }

  step "Gate" {
    runner       = "approval"
    instructions = "check"
    depends_on   = ["stack.db"]
  }
}
`)

	g, err := Build(context.Background(), m, newRegistry())
	require.NoError(t, err)

	// The self-update section lands right after the group with the build step.
	assert.Equal(t, []string{"Build", "UpdatePipeline", "Prod"}, sectionIDs(g))

	synth := g.Node("Build/Synth")
	require.NotNil(t, synth)
	payload, ok := synth.Payload.(graph.StepPayload)
	require.True(t, ok)
	assert.True(t, payload.IsBuildStep)
	assert.Equal(t, "Synth", payload.Step.StepName())

	prepare := g.Node("Prod/db/Prepare")
	deploy := g.Node("Prod/db/Deploy")
	require.NotNil(t, prepare)
	require.NotNil(t, deploy)
	assert.Equal(t, []string{"Prod/db/Prepare"}, g.Dependencies("Prod/db/Deploy"))

	exec, ok := deploy.Payload.(graph.ExecutePayload)
	require.True(t, ok)
	assert.Equal(t, "db", exec.Stack.Name)

	// The gate waits for the stack's deploy leaf, not its prepare leaf.
	assert.Equal(t, []string{"Prod/db/Deploy"}, g.Dependencies("Prod/Gate"))

	pub := g.Node("Prod/Images")
	require.NotNil(t, pub)
	assets := pub.Payload.(graph.PublishAssetsPayload).Assets
	require.Len(t, assets, 1)
	assert.Equal(t, "image", assets[0].Kind, "asset kind defaults to the publish kind")
}

func TestBuildWithoutSelfMutation(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Prod" {
  stack "db" {}
}
`)

	g, err := Build(context.Background(), m, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"Prod"}, sectionIDs(g))
}

func TestBuildSelfMutationWithoutBuildStep(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name          = "demo"
  self_mutation = true
}

group "Alpha" {
  stack "a" {}
}

group "Beta" {
  stack "b" {}
}
`)

	g, err := Build(context.Background(), m, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "UpdatePipeline", "Beta"}, sectionIDs(g))

	self := g.Node("UpdatePipeline/SelfMutate")
	require.NotNil(t, self)
	_, ok := self.Payload.(graph.SelfUpdatePayload)
	assert.True(t, ok)
}

func TestBuildCrossGroupReference(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Build" {
  step "Synth" {
    runner   = "shell"
    commands = ["make synth"]
  }
}

group "Prod" {
  step "Smoke" {
    runner     = "shell"
    commands   = ["make smoke"]
    depends_on = ["step.Synth"]
  }
}
`)

	g, err := Build(context.Background(), m, newRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"Build/Synth"}, g.Dependencies("Prod/Smoke"))
}

func TestBuildRejectsBadReferences(t *testing.T) {
	t.Run("unknown reference", func(t *testing.T) {
		m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Prod" {
  step "Smoke" {
    runner     = "shell"
    commands   = ["true"]
    depends_on = ["stack.missing"]
  }
}
`)
		_, err := Build(context.Background(), m, newRegistry())
		assert.ErrorContains(t, err, "unknown reference")
	})

	t.Run("malformed reference", func(t *testing.T) {
		m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Prod" {
  step "Smoke" {
    runner     = "shell"
    commands   = ["true"]
    depends_on = ["missing"]
  }
}
`)
		_, err := Build(context.Background(), m, newRegistry())
		assert.ErrorContains(t, err, "malformed reference")
	})

	t.Run("ambiguous cross-group reference", func(t *testing.T) {
		m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Alpha" {
  stack "db" {}
}

group "Beta" {
  stack "db" {}
}

group "Gamma" {
  step "Smoke" {
    runner     = "shell"
    commands   = ["true"]
    depends_on = ["stack.db"]
  }
}
`)
		_, err := Build(context.Background(), m, newRegistry())
		assert.ErrorContains(t, err, "ambiguous reference")
	})
}

func TestBuildRejectsUnknownRunner(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Prod" {
  step "Smoke" {
    runner = "rocket"
  }
}
`)
	_, err := Build(context.Background(), m, newRegistry())
	assert.ErrorContains(t, err, "unknown runner type")
}

func TestBuildRejectsEmptyPublish(t *testing.T) {
	m := loadManifest(t, `
pipeline {
  name = "demo"
}

group "Prod" {
  publish "Images" {
    kind = "image"
  }
}
`)
	_, err := Build(context.Background(), m, newRegistry())
	assert.ErrorContains(t, err, "declares no assets")
}

func TestBuildRejectsNoGroups(t *testing.T) {
	m := &model.Manifest{Pipeline: &model.Pipeline{Name: "demo"}}
	_, err := Build(context.Background(), m, newRegistry())
	assert.ErrorContains(t, err, "no deployment groups")
}
