// SPDX-License-Identifier: MIT

package symmetry

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/status"
)

// MaxGroupSize bounds the closure. Reaching it means the generators describe
// a group far beyond what a basis can enumerate.
const MaxGroupSize = 1 << 16

// Element is one member of a Group: an action with its character.
type Element struct {
	permutation []int
	flip        bool
	phase       phase
	periodicity int
	eigenvalue  complex128
	mask        bits.Bits
}

// Apply maps a configuration through the element.
func (e *Element) Apply(x bits.Bits) bits.Bits {
	y := x.Permute(e.permutation)
	if e.flip {
		y = y.Xor(e.mask)
	}

	return y
}

// Permutation returns a copy of the element's permutation.
func (e *Element) Permutation() []int {
	out := make([]int, len(e.permutation))
	copy(out, e.permutation)

	return out
}

// Flip reports whether the element inverts all spins.
func (e *Element) Flip() bool { return e.flip }

// Periodicity returns the order of the element.
func (e *Element) Periodicity() int { return e.periodicity }

// Sector returns phase·periodicity, an integer by construction.
func (e *Element) Sector() int { return e.phase.num * (e.periodicity / e.phase.den) }

// Phase returns the character's phase in [0, 1).
func (e *Element) Phase() float64 { return e.phase.float() }

// Eigenvalue returns the character exp(2πi·Phase()).
func (e *Element) Eigenvalue() complex128 { return e.eigenvalue }

// IsIdentity reports whether the element acts trivially.
func (e *Element) IsIdentity() bool {
	if e.flip {
		return false
	}
	for i, p := range e.permutation {
		if i != p {
			return false
		}
	}

	return true
}

// key is the action signature used for duplicate detection.
func (e *Element) key() string {
	buf := make([]byte, 0, 2*len(e.permutation)+1)
	for _, p := range e.permutation {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(p))
	}
	if e.flip {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	return string(buf)
}

// compose returns g∘h (h acts first). The product phase is the exact sum of
// phases; it must be compatible with the product's order.
func compose(g, h *Element) (*Element, error) {
	n := len(g.permutation)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = h.permutation[g.permutation[i]]
	}
	flip := g.flip != h.flip
	p, err := periodicityOf(perm, flip)
	if err != nil {
		return nil, err
	}
	ph := g.phase.add(h.phase)
	if p%ph.den != 0 {
		return nil, fmt.Errorf("symmetry: phase %d/%d incompatible with periodicity %d: %w",
			ph.num, ph.den, p, status.ErrIncompatibleSymmetries)
	}

	return &Element{
		permutation: perm,
		flip:        flip,
		phase:       ph,
		periodicity: p,
		eigenvalue:  eigenvalueOf(ph),
		mask:        g.mask,
	}, nil
}

func identityElement(numberSpins int) *Element {
	perm := make([]int, numberSpins)
	for i := range perm {
		perm[i] = i
	}

	return &Element{
		permutation: perm,
		phase:       phase{0, 1},
		periodicity: 1,
		eigenvalue:  1,
		mask:        bits.Mask(numberSpins),
	}
}

func elementOf(s *Symmetry) *Element {
	ph := newPhase(s.sector, s.periodicity)

	return &Element{
		permutation: s.permutation,
		flip:        s.flip,
		phase:       ph,
		periodicity: s.periodicity,
		eigenvalue:  eigenvalueOf(ph),
		mask:        s.mask,
	}
}

// Group is the closure of a set of generators. Immutable after construction.
// Element 0 is always the identity (for non-empty groups).
type Group struct {
	numberSpins int
	elements    []*Element
	hasFlip     bool
}

// NewGroup closes generators under composition.
//
// Implementation:
//   - Stage 1: all generators must act on the same number of spins.
//   - Stage 2: worklist from the identity; every dequeued element is
//     multiplied by every generator; products are looked up by action.
//   - Stage 3: a known action reached with a different phase is a conflict.
//
// Errors:
//   - status.ErrIncompatibleSymmetries on spin-count or phase conflicts.
//   - status.ErrInternal when the closure exceeds MaxGroupSize.
//
// An empty generator list yields the empty group (no symmetries).
func NewGroup(generators []*Symmetry) (*Group, error) {
	if len(generators) == 0 {
		return &Group{}, nil
	}
	n := generators[0].NumberSpins()
	gens := make([]*Element, len(generators))
	for i, s := range generators {
		if s == nil {
			return nil, fmt.Errorf("symmetry.NewGroup: generator %d is nil: %w", i, status.ErrInvalidArgument)
		}
		if s.NumberSpins() != n {
			return nil, fmt.Errorf("symmetry.NewGroup: generator %d acts on %d spins, want %d: %w",
				i, s.NumberSpins(), n, status.ErrIncompatibleSymmetries)
		}
		gens[i] = elementOf(s)
	}

	id := identityElement(n)
	known := map[string]*Element{id.key(): id}
	elements := []*Element{id}
	for queue := []*Element{id}; len(queue) > 0; queue = queue[1:] {
		e := queue[0]
		for _, g := range gens {
			c, err := compose(g, e)
			if err != nil {
				return nil, fmt.Errorf("symmetry.NewGroup: %w", err)
			}
			k := c.key()
			if old, ok := known[k]; ok {
				if old.phase != c.phase {
					return nil, fmt.Errorf("symmetry.NewGroup: action reached with phases %g and %g: %w",
						old.phase.float(), c.phase.float(), status.ErrIncompatibleSymmetries)
				}
				continue
			}
			if len(elements) >= MaxGroupSize {
				return nil, fmt.Errorf("symmetry.NewGroup: closure exceeds %d elements: %w", MaxGroupSize, status.ErrInternal)
			}
			known[k] = c
			elements = append(elements, c)
			queue = append(queue, c)
		}
	}

	grp := &Group{numberSpins: n, elements: elements}
	for _, e := range elements {
		grp.hasFlip = grp.hasFlip || e.flip
	}

	return grp, nil
}

// TrivialGroup returns the group containing only the identity.
func TrivialGroup(numberSpins int) (*Group, error) {
	if numberSpins < 1 || numberSpins > bits.MaxSpins {
		return nil, fmt.Errorf("symmetry.TrivialGroup: %d spins: %w", numberSpins, status.ErrInvalidArgument)
	}

	return &Group{numberSpins: numberSpins, elements: []*Element{identityElement(numberSpins)}}, nil
}

// Size returns the number of elements (0 for the empty group).
func (g *Group) Size() int { return len(g.elements) }

// NumberSpins returns the spin count the group acts on, or 0 when empty.
func (g *Group) NumberSpins() int { return g.numberSpins }

// HasFlip reports whether any element inverts spins.
func (g *Group) HasFlip() bool { return g.hasFlip }

// Elements returns the elements in closure order, identity first.
// The returned slice is a copy; elements themselves are immutable.
func (g *Group) Elements() []*Element {
	out := make([]*Element, len(g.elements))
	copy(out, g.elements)

	return out
}

// At returns element i without copying the element list.
func (g *Group) At(i int) *Element { return g.elements[i] }

// Contains reports whether some element has exactly this action.
func (g *Group) Contains(permutation []int, flip bool) bool {
	probe := (&Element{permutation: permutation, flip: flip}).key()
	for _, e := range g.elements {
		if e.key() == probe {
			return true
		}
	}

	return false
}

// Digest is a stable fingerprint of the group (actions and characters),
// independent of generator order. Used to key basis caches.
func (g *Group) Digest() [sha256.Size]byte {
	type entry struct {
		key      string
		num, den int
	}
	entries := make([]entry, len(g.elements))
	for i, e := range g.elements {
		entries[i] = entry{e.key(), e.phase.num, e.phase.den}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(g.numberSpins))
	h.Write(buf[:])
	for _, e := range entries {
		h.Write([]byte(e.key))
		binary.LittleEndian.PutUint64(buf[:], uint64(e.num))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(e.den))
		h.Write(buf[:])
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))

	return out
}
