// Package model loads spin models from YAML files and turns them into a
// built basis and operator.
//
// A model file looks like:
//
//	number_spins: 4
//	hamming_weight: 2          # optional
//	symmetries:
//	  - permutation: [1, 2, 3, 0]
//	    sector: 0
//	  - permutation: [0, 1, 2, 3]
//	    sector: 0
//	    flip: true
//	interactions:
//	  - matrix:
//	      - [1, 0, 0, 0]
//	      - [0, -1, 2, 0]
//	      - [0, 2, -1, 0]
//	      - [0, 0, 0, 1]
//	    sites: [[0, 1], [1, 2], [2, 3], [3, 0]]
//
// Matrix entries are real numbers or [re, im] pairs. Unknown keys are
// rejected so that typos fail loudly.
package model
