package environment

import (
	"github.com/viant/autofix/rule"
	"github.com/viant/autofix/unit"
	"golang.org/x/mod/modfile"
	"path"
	"regexp"
)

// signature describes how one environment tag is recognised: content
// patterns (imports, API idioms) and marker filenames. A tag's score is the
// best fraction of content patterns matched by any single unit; a marker
// filename match scores the tag outright.
type signature struct {
	tag      string
	patterns []*regexp.Regexp
	markers  []string
}

// Detector inspects a code unit collection for framework and library
// signatures. Detection is best effort and never fails: content that matches
// nothing simply contributes nothing to the profile.
type Detector struct {
	signatures []signature
}

// New creates a detector with the built-in signature set
func New() *Detector {
	return &Detector{signatures: builtinSignatures()}
}

// Detect scans the collection and returns the environment profile
func (d *Detector) Detect(units []*unit.CodeUnit) Profile {
	profile := Profile{Scores: map[string]float64{}}
	for _, u := range units {
		base := path.Base(u.ID)
		if base == "go.mod" {
			profile.Scores["go"] = 1
			if mod, _ := modfile.Parse(u.ID, []byte(u.Current), nil); mod != nil && mod.Module != nil {
				profile.Module = mod.Module.Mod.Path
			}
			continue
		}
		if u.Language != "" {
			profile.Scores[u.Language] = 1
		}
		for _, sig := range d.signatures {
			for _, marker := range sig.markers {
				if base == marker {
					profile.Scores[sig.tag] = 1
				}
			}
			if len(sig.patterns) == 0 || profile.Scores[sig.tag] >= 1 {
				continue
			}
			matched := 0
			for _, pattern := range sig.patterns {
				if pattern.MatchString(u.Current) {
					matched++
				}
			}
			if matched == 0 {
				continue
			}
			score := float64(matched) / float64(len(sig.patterns))
			if score > profile.Scores[sig.tag] {
				profile.Scores[sig.tag] = score
			}
		}
		for _, tag := range u.Tags {
			profile.Scores[tag] = 1
		}
	}
	return profile
}

// FilterFor returns a rule filter for the detected profile: rules without
// environment tags always pass, tagged rules require at least one detected tag
func (d *Detector) FilterFor(profile Profile) rule.Filter {
	return func(r *rule.Rule) bool {
		if len(r.EnvironmentTags) == 0 {
			return true
		}
		for _, tag := range r.EnvironmentTags {
			if profile.Has(tag) {
				return true
			}
		}
		return false
	}
}

func builtinSignatures() []signature {
	return []signature{
		{tag: "python", markers: []string{"requirements.txt", "pyproject.toml", "setup.py"}},
		{tag: "javascript", markers: []string{"package.json"}},
		{tag: "go", markers: []string{"go.sum"}},
		{tag: "blender", patterns: compile(
			`(?m)^import bpy`,
			`(?m)^from bpy\s+import`,
			`bpy\.ops\.`,
			`bpy\.context`,
			`bpy\.data`,
		)},
		{tag: "django", markers: []string{"manage.py"}, patterns: compile(
			`from django\.`,
			`(?m)^import django`,
			`@login_required`,
			`from rest_framework`,
		)},
		{tag: "flask", patterns: compile(
			`from flask\s+import`,
			`(?m)^import flask`,
			`@app\.route`,
		)},
		{tag: "pytorch", patterns: compile(
			`(?m)^import torch`,
			`from torch\s+import`,
			`torch\.nn`,
			`torch\.optim`,
		)},
		{tag: "tensorflow", patterns: compile(
			`(?m)^import tensorflow`,
			`tf\.Session`,
			`tensorflow\.keras`,
		)},
		{tag: "opencv", patterns: compile(
			`(?m)^import cv2`,
			`cv2\.imread`,
			`cv2\.VideoCapture`,
		)},
		{tag: "aws", patterns: compile(
			`(?m)^import boto3`,
			`boto3\.client`,
			`boto3\.resource`,
		)},
		{tag: "numpy", patterns: compile(
			`(?m)^import numpy`,
			`np\.array`,
		)},
		{tag: "pandas", patterns: compile(
			`(?m)^import pandas`,
			`pd\.read_csv`,
			`pd\.DataFrame`,
		)},
		{tag: "requests", patterns: compile(
			`(?m)^import requests`,
			`requests\.(get|post|put|delete)\(`,
		)},
	}
}

func compile(expressions ...string) []*regexp.Regexp {
	var patterns []*regexp.Regexp
	for _, expr := range expressions {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}
