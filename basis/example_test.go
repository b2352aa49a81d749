package basis_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/spinsym/basis"
	"github.com/katalvlaran/spinsym/bits"
	"github.com/katalvlaran/spinsym/symmetry"
)

// ExampleSpinBasis_Build builds the zero-momentum sector of a 4-site ring.
func ExampleSpinBasis_Build() {
	T, _ := symmetry.New([]int{1, 2, 3, 0}, 0, false)
	group, _ := symmetry.NewGroup([]*symmetry.Symmetry{T})
	b, _ := basis.New(4, -1, group)
	if err := b.Build(context.Background()); err != nil {
		fmt.Println(err)
		return
	}
	defer b.Close()

	states, _ := b.StatesUint64()
	norms, _ := b.Norms()
	for i := range states {
		fmt.Printf("%04b %.4f\n", states[i], norms[i])
	}

	// Output:
	// 0000 1.0000
	// 0001 0.5000
	// 0011 0.5000
	// 0101 0.7071
	// 0111 0.5000
	// 1111 1.0000
}

// ExampleSpinBasis_StateInfo maps a configuration to its representative.
func ExampleSpinBasis_StateInfo() {
	T, _ := symmetry.New([]int{1, 2, 3, 0}, 1, false)
	group, _ := symmetry.NewGroup([]*symmetry.Symmetry{T})
	b, _ := basis.New(4, -1, group)

	rep, chi, norm := b.StateInfo(bits.FromUint64(0b0100))
	fmt.Println(rep, chi, norm)

	// Output:
	// 0x1 (-1+0i) 0.5
}
