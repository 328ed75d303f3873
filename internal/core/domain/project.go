package domain

import "go.trai.ch/zerr"

// Project is a loaded step file.
type Project struct {
	// ConfigPath is the absolute path of the step file.
	ConfigPath string
	// Root is the absolute base directory of every step.
	Root string
	// Steps are kept in declaration order.
	Steps []Step
}

// StepNames returns the step names in declaration order.
func (p *Project) StepNames() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Options().Name
	}
	return names
}

// Select returns the named steps in declaration order.
// With no names, every step is returned.
func (p *Project) Select(names []string) ([]Step, error) {
	if len(names) == 0 {
		out := make([]Step, len(p.Steps))
		copy(out, p.Steps)
		return out, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	out := make([]Step, 0, len(names))
	for _, s := range p.Steps {
		name := s.Options().Name
		if wanted[name] {
			out = append(out, s)
			delete(wanted, name)
		}
	}

	for _, name := range names {
		if wanted[name] {
			return nil, zerr.With(ErrStepNotFound, "step", name)
		}
	}

	return out, nil
}
