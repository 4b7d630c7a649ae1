// Package games holds the dice domain: die values and the win-probability
// table used for player guidance.
package games

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoFaces indicates a die was defined with an empty face list.
var ErrNoFaces = errors.New("die must have at least one face")

// Die is an immutable ordered list of integer face values. Duplicate
// faces are allowed.
type Die struct {
	faces []int
}

// NewDie creates a die from the given faces. The slice is copied; the die
// never changes after construction.
func NewDie(faces []int) (Die, error) {
	if len(faces) == 0 {
		return Die{}, ErrNoFaces
	}
	return Die{faces: append([]int(nil), faces...)}, nil
}

// ParseDie parses a comma-separated face list such as "2,2,4,4,9,9".
func ParseDie(s string) (Die, error) {
	parts := strings.Split(s, ",")
	faces := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Die{}, fmt.Errorf("parse die %q: face %q is not an integer", s, p)
		}
		faces = append(faces, v)
	}
	return NewDie(faces)
}

// FaceAt returns the face at index i, wrapping cyclically: faces[i mod
// len]. It is total over all non-negative indices.
func (d Die) FaceAt(i int) int {
	return d.faces[i%len(d.faces)]
}

// NumFaces returns the number of faces.
func (d Die) NumFaces() int {
	return len(d.faces)
}

// Faces returns a copy of the face values in order.
func (d Die) Faces() []int {
	return append([]int(nil), d.faces...)
}

func (d Die) String() string {
	parts := make([]string, len(d.faces))
	for i, f := range d.faces {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}
