package elements

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alphabill-org/rbtree/tree/rbtree"
)

// Epsilon is the tolerance within which two vector components are considered equal.
const Epsilon = 0.01

var (
	ErrEmptyVector      = errors.New("empty vector")
	ErrInvalidComponent = errors.New("vector component is not a finite number")
)

type Vector []float64

// FreeVector is the destructor of vectors, they don't hold any resources.
var FreeVector rbtree.FreeFunc[Vector] = rbtree.NoopFree[Vector]

/*
CompareVectors compares vectors component by component. The first pair of
components differing by more than Epsilon decides the order; when all common
components are equal the shorter vector is the smaller one.
*/
func CompareVectors(a, b Vector) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case b[i]-a[i] > Epsilon:
			return -1
		case a[i]-b[i] > Epsilon:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// squaredNorm is the norm of the vector without the square root, enough for comparing norms.
func (v Vector) squaredNorm() float64 {
	var sum float64
	for _, c := range v {
		sum += c * c
	}
	return sum
}

/*
MaxNormVector returns a copy of the vector with the largest norm in the tree.
Of vectors with equal norm the first one in order wins. Returns nil for an
empty tree and ErrEmptyVector when the tree holds a zero length vector.
*/
func MaxNormVector(tree Iterable[Vector]) (Vector, error) {
	var maxV Vector
	maxNorm := math.Inf(-1)
	ok := tree.ForEach(func(v Vector) bool {
		if len(v) == 0 {
			return false
		}
		if n := v.squaredNorm(); n > maxNorm {
			maxNorm = n
			maxV = append(maxV[:0], v...)
		}
		return true
	})
	if !ok {
		return nil, ErrEmptyVector
	}
	return maxV, nil
}

// ParseVector parses vector components separated by whitespace or commas.
func ParseVector(s string) (Vector, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	v := make(Vector, 0, len(fields))
	for _, f := range fields {
		c, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid vector component %q: %w", f, err)
		}
		v = append(v, c)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that the vector is not empty and all its components are finite.
// CompareVectors is a total order only over finite components.
func (v Vector) Validate() error {
	if len(v) == 0 {
		return ErrEmptyVector
	}
	for i, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("component %d (%v): %w", i, c, ErrInvalidComponent)
		}
	}
	return nil
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
