package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/operator"
	"github.com/katalvlaran/spinsym/status"
	"github.com/katalvlaran/spinsym/symmetry"
)

var validate = validator.New()

// Model is the decoded form of a model file.
type Model struct {
	NumberSpins   int               `yaml:"number_spins" validate:"required,min=1,max=512"`
	HammingWeight *int              `yaml:"hamming_weight" validate:"omitempty,gte=0"`
	Symmetries    []SymmetrySpec    `yaml:"symmetries" validate:"dive"`
	Interactions  []InteractionSpec `yaml:"interactions" validate:"required,min=1,dive"`
}

// SymmetrySpec describes one generator.
type SymmetrySpec struct {
	Permutation []int `yaml:"permutation" validate:"required,min=1,dive,gte=0"`
	Sector      int   `yaml:"sector" validate:"gte=0"`
	Flip        bool  `yaml:"flip"`
}

// InteractionSpec describes one term of the Hamiltonian.
type InteractionSpec struct {
	Matrix [][]Complex `yaml:"matrix" validate:"required,min=2,max=16,dive,min=2,max=16"`
	Sites  [][]int     `yaml:"sites" validate:"required,min=1,dive,min=1,max=4,dive,gte=0"`
}

// Complex is a matrix entry written as a number or as [re, im].
type Complex complex128

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Complex) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var re float64
		if err := node.Decode(&re); err != nil {
			return err
		}
		*c = Complex(complex(re, 0))

		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 2 {
			return fmt.Errorf("line %d: complex entry needs [re, im], got %d values", node.Line, len(parts))
		}
		*c = Complex(complex(parts[0], parts[1]))

		return nil
	}

	return fmt.Errorf("line %d: complex entry must be a number or [re, im]", node.Line)
}

// Load reads and validates the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model.Load: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("model.Load: %s: %w", path, err)
	}

	return m, nil
}

// Parse decodes and validates a model document.
//
// Errors: status.ErrInvalidArgument for malformed YAML, unknown keys and
// failed validation.
func Parse(data []byte) (*Model, error) {
	var m Model
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("model.Parse: empty document: %w", status.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("model.Parse: %v: %w", err, status.ErrInvalidArgument)
	}
	if err := validate.Struct(&m); err != nil {
		return nil, fmt.Errorf("model.Parse: %v: %w", err, status.ErrInvalidArgument)
	}

	return &m, nil
}

// Group closes the declared generators.
func (m *Model) Group() (*symmetry.Group, error) {
	gens := make([]*symmetry.Symmetry, len(m.Symmetries))
	for i, s := range m.Symmetries {
		g, err := symmetry.New(s.Permutation, s.Sector, s.Flip)
		if err != nil {
			return nil, fmt.Errorf("model: symmetry %d: %w", i, err)
		}
		gens[i] = g
	}

	return symmetry.NewGroup(gens)
}

// Terms converts the declared interactions.
func (m *Model) Terms() ([]*operator.Interaction, error) {
	out := make([]*operator.Interaction, len(m.Interactions))
	for i, spec := range m.Interactions {
		mat := make([][]complex128, len(spec.Matrix))
		for r, row := range spec.Matrix {
			mat[r] = make([]complex128, len(row))
			for c, v := range row {
				mat[r][c] = complex128(v)
			}
		}
		it, err := operator.NewInteraction(mat, spec.Sites)
		if err != nil {
			return nil, fmt.Errorf("model: interaction %d: %w", i, err)
		}
		out[i] = it
	}

	return out, nil
}

// Build constructs and builds the basis, then binds the operator to it.
// On error nothing needs closing.
func (m *Model) Build(ctx context.Context, opts ...basis.Option) (*basis.SpinBasis, *operator.Operator, error) {
	return m.BuildWith(ctx, opts, nil)
}

// BuildWith is Build with operator options (logger, metrics, workers) as well.
func (m *Model) BuildWith(ctx context.Context, basisOpts []basis.Option, opOpts []operator.Option) (*basis.SpinBasis, *operator.Operator, error) {
	group, err := m.Group()
	if err != nil {
		return nil, nil, err
	}
	terms, err := m.Terms()
	if err != nil {
		return nil, nil, err
	}
	hw := -1
	if m.HammingWeight != nil {
		hw = *m.HammingWeight
	}
	b, err := basis.New(m.NumberSpins, hw, group, basisOpts...)
	if err != nil {
		return nil, nil, err
	}
	if err := b.Build(ctx); err != nil {
		return nil, nil, err
	}
	op, err := operator.New(b, terms, opOpts...)
	if err != nil {
		_ = b.Close()
		return nil, nil, err
	}

	return b, op, nil
}
