// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Manifest structure, the root container for all
// configuration loaded from a user's .hcl files, and the block structures
// below it.
package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Manifest represents the user's pipeline definition.
type Manifest struct {
	Pipeline  *Pipeline
	Variables map[string]cty.Value
	Groups    []*Group
}

// Pipeline is the single `pipeline` block.
type Pipeline struct {
	Name         string   `hcl:"name"`
	SelfMutation bool     `hcl:"self_mutation,optional"`
	Capacity     int      `hcl:"capacity,optional"`
	// CredentialProviders are the external registry credential endpoints
	// that receive read grants for registry-backed asset categories.
	CredentialProviders []string `hcl:"credential_providers,optional"`
}

// Group is one top-level deployment group.
type Group struct {
	Name      string     `hcl:"name,label"`
	Stacks    []*Stack   `hcl:"stack,block"`
	Publishes []*Publish `hcl:"publish,block"`
	Steps     []*Step    `hcl:"step,block"`
}

// Stack declares one deployable stack. It expands into a prepare/deploy
// leaf pair in the graph.
type Stack struct {
	Name           string   `hcl:"name,label"`
	CaptureOutputs bool     `hcl:"capture_outputs,optional"`
	DependsOn      []string `hcl:"depends_on,optional"`
}

// Publish declares one asset-publication group. Every asset in the group
// must resolve to the same kind.
type Publish struct {
	Name      string   `hcl:"name,label"`
	Kind      string   `hcl:"kind"`
	Assets    []*Asset `hcl:"asset,block"`
	DependsOn []string `hcl:"depends_on,optional"`
}

// Asset is one publishable artifact. Kind defaults to the enclosing
// publish block's kind.
type Asset struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
	Kind string `hcl:"kind,optional"`
	Role string `hcl:"role,optional"`
}

// Step declares a runner-backed step. The env expression is kept raw and
// evaluated against the manifest variables when the step spec is resolved.
type Step struct {
	Name         string         `hcl:"name,label"`
	Runner       string         `hcl:"runner"`
	Build        bool           `hcl:"build,optional"`
	Commands     []string       `hcl:"commands,optional"`
	Install      []string       `hcl:"install,optional"`
	Output       string         `hcl:"output,optional"`
	Instructions string         `hcl:"instructions,optional"`
	Env          hcl.Expression `hcl:"env,optional"`
	DependsOn    []string       `hcl:"depends_on,optional"`
}
