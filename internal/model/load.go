// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Loading functions: discover .hcl manifest files under a path and
// consolidate them into a single Manifest. A user may split their pipeline
// definition across many files; aggregating everything into one place is
// what enables workspace-wide dependency resolution.
package model

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stageforge/internal/ctxlog"
	"github.com/vk/stageforge/internal/fsutil"
)

// hclManifestFile represents the top-level structure of a manifest file for
// decoding.
type hclManifestFile struct {
	Pipeline  *Pipeline            `hcl:"pipeline,block"`
	Variables []*hclVariablesBlock `hcl:"variables,block"`
	Groups    []*Group             `hcl:"group,block"`
}

// hclVariablesBlock captures a `variables` block; its attributes are
// evaluated into concrete values after decoding.
type hclVariablesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// loadFile parses a single HCL file into its manifest fragments.
func loadFile(filePath string, parser *hclparse.Parser) (*hclManifestFile, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed hclManifestFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}
	return &parsed, nil
}

// Load finds and parses every .hcl file under the given path (a single
// file or a directory) into one consolidated Manifest. Exactly one
// `pipeline` block must exist across all files.
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest from path", "path", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("manifest path %s: %w", path, err)
	}
	var files []string
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find manifest files in %s: %w", path, err)
		}
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl manifest files found in %s", path)
	}

	manifest := &Manifest{Variables: map[string]cty.Value{}}
	parser := hclparse.NewParser()
	for _, file := range files {
		parsed, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		if parsed.Pipeline != nil {
			if manifest.Pipeline != nil {
				return nil, fmt.Errorf("duplicate pipeline block in %s", file)
			}
			manifest.Pipeline = parsed.Pipeline
		}
		for _, vars := range parsed.Variables {
			if err := evalVariables(vars.Body, manifest.Variables); err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
		}
		manifest.Groups = append(manifest.Groups, parsed.Groups...)
	}

	if manifest.Pipeline == nil {
		return nil, fmt.Errorf("manifest defines no pipeline block")
	}
	if manifest.Pipeline.Name == "" {
		return nil, fmt.Errorf("pipeline name must not be empty")
	}

	logger.Debug("Manifest loaded.", "groups", len(manifest.Groups), "variables", len(manifest.Variables))
	return manifest, nil
}
