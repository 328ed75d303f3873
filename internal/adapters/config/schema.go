package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Stepfile represents the structure of the cmk.yaml configuration file.
type Stepfile struct {
	Version    string            `yaml:"version"`
	Root       string            `yaml:"root"`
	Properties map[string]string `yaml:"properties"`
	Steps      []*StepDTO        `yaml:"steps"`
}

// StepDTO represents a step declaration. Empty strings mean unset.
type StepDTO struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// CMakePath is a pointer so an explicit empty value can be rejected.
	CMakePath   *string          `yaml:"cmakepath"`
	BuildDir    string           `yaml:"builddir"`
	FailOnError *bool            `yaml:"failonerror"`
	Timeout     string           `yaml:"timeout"`
	Environment []EnvironmentDTO `yaml:"environment"`

	// cmake-configure only.
	SourceDir     string `yaml:"sourcedir"`
	BuildType     string `yaml:"buildtype"`
	Generator     string `yaml:"generator"`
	PreloadScript string `yaml:"preloadscript"`
	CMakeArgs     string `yaml:"cmakeargs"`

	// cmake-build only.
	Target            string `yaml:"target"`
	Config            string `yaml:"config"`
	CleanFirst        *bool  `yaml:"cleanfirst"`
	NativeToolOptions string `yaml:"options-for-native-tool"`
}

// EnvironmentDTO represents one environment entry of a step.
type EnvironmentDTO struct {
	Name   string     `yaml:"name"`
	Value  *string    `yaml:"value"`
	If     *Condition `yaml:"if"`
	Unless *Condition `yaml:"unless"`
}

// Condition is either a YAML boolean or an expression evaluated at load time.
type Condition struct {
	Literal *bool
	Expr    string
}

// UnmarshalYAML accepts `true`, `false` or an expression string.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return zerr.With(zerr.New("condition must be a boolean or an expression"), "line", node.Line)
	}

	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		c.Literal = &b
		return nil
	}

	c.Expr = node.Value
	return nil
}

// configureAttributes returns the configure-only attributes that are set.
func (d *StepDTO) configureAttributes() []string {
	return setAttributes(map[string]bool{
		"sourcedir":     d.SourceDir != "",
		"buildtype":     d.BuildType != "",
		"generator":     d.Generator != "",
		"preloadscript": d.PreloadScript != "",
		"cmakeargs":     d.CMakeArgs != "",
	})
}

// buildAttributes returns the build-only attributes that are set.
func (d *StepDTO) buildAttributes() []string {
	return setAttributes(map[string]bool{
		"target":                  d.Target != "",
		"config":                  d.Config != "",
		"cleanfirst":              d.CleanFirst != nil,
		"options-for-native-tool": d.NativeToolOptions != "",
	})
}
