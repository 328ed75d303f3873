package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/cmk/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Plan output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// PlanEntry is the composed, unspawned invocation of one step.
type PlanEntry struct {
	Step        string            `json:"step" yaml:"step"`
	Kind        string            `json:"kind" yaml:"kind"`
	Program     string            `json:"program" yaml:"program"`
	Arguments   []string          `json:"arguments" yaml:"arguments"`
	CommandLine string            `json:"commandLine" yaml:"commandLine"`
	WorkingDir  string            `json:"workingDir" yaml:"workingDir"`
	Environment map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
	FailOnError bool              `json:"failOnError" yaml:"failOnError"`
	Timeout     string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Fingerprint string            `json:"fingerprint" yaml:"fingerprint"`
}

func newPlanEntry(inv *domain.Invocation) PlanEntry {
	tokens := inv.Arguments.Tokens()
	args := make([]string, len(tokens))
	for i, tok := range tokens {
		args[i] = tok.Render()
	}

	entry := PlanEntry{
		Step:        inv.Step,
		Kind:        string(inv.Kind),
		Program:     inv.Program,
		Arguments:   args,
		CommandLine: inv.CommandLine(),
		WorkingDir:  inv.WorkingDir,
		Environment: inv.Environment,
		FailOnError: inv.FailOnError,
		Fingerprint: inv.Fingerprint(),
	}
	if inv.Timeout > 0 {
		entry.Timeout = inv.Timeout.String()
	}
	return entry
}

// Plan composes the named steps without spawning them and writes the result to w.
func (a *App) Plan(ctx context.Context, stepNames []string, format string, w io.Writer) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return zerr.With(domain.ErrInvalidPlanFormat, "format", format)
	}

	steps, err := a.selectSteps(stepNames)
	if err != nil {
		return err
	}

	entries := make([]PlanEntry, len(steps))
	g, _ := errgroup.WithContext(ctx)
	for i, step := range steps {
		g.Go(func() error {
			inv, err := a.composer.Compose(step)
			if err != nil {
				return zerr.With(err, "step", step.Options().Name)
			}
			entries[i] = newPlanEntry(inv)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := encodePlan(w, format, entries); err != nil {
		return zerr.Wrap(err, domain.ErrPlanEncodeFailed.Error())
	}
	return nil
}

func encodePlan(w io.Writer, format string, entries []PlanEntry) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTextPlan(w, entries)
	}
}

func writeTextPlan(w io.Writer, entries []PlanEntry) error {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s) %s\n", e.Step, e.Kind, e.Fingerprint)
		fmt.Fprintf(&b, "  cmd: %s\n", e.CommandLine)
		fmt.Fprintf(&b, "  dir: %s\n", e.WorkingDir)
		for _, name := range slices.Sorted(maps.Keys(e.Environment)) {
			fmt.Fprintf(&b, "  env: %s=%s\n", name, e.Environment[name])
		}
		if !e.FailOnError {
			b.WriteString("  failonerror: false\n")
		}
		if e.Timeout != "" {
			fmt.Fprintf(&b, "  timeout: %s\n", e.Timeout)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
