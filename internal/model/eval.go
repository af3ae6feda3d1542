// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Expression evaluation: manifest variables are resolved into concrete cty
// values at load time, and step env expressions are evaluated against them
// when the step spec is built.
package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// evalVariables resolves every attribute of a `variables` block into the
// given map. Variable expressions may not reference other variables.
func evalVariables(body hcl.Body, into map[string]cty.Value) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("invalid variables block: %w", diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating variable %q: %w", name, diags)
		}
		into[name] = val
	}
	return nil
}

// EvalContext returns the HCL evaluation context exposing the manifest
// variables as `var.<name>`.
func (m *Manifest) EvalContext() *hcl.EvalContext {
	vars := m.Variables
	if vars == nil {
		vars = map[string]cty.Value{}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}
}

// ResolveEnv evaluates the step's env expression into a string map using
// the manifest's evaluation context. A step without an env expression
// yields nil.
func (m *Manifest) ResolveEnv(step *Step) (map[string]string, error) {
	if step.Env == nil {
		return nil, nil
	}
	val, diags := step.Env.Value(m.EvalContext())
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating env for step %q: %w", step.Name, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("env for step %q must be a map of strings", step.Name)
	}

	env := make(map[string]string)
	for key, v := range val.AsValueMap() {
		converted, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("env value %q for step %q: %w", key, step.Name, err)
		}
		env[key] = converted.AsString()
	}
	return env, nil
}
