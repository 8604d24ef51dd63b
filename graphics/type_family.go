package graphics

import (
	"fmt"
	"strings"
)

// TypeFamily represents a collection of typefaces that relate to each
// other, such as the weights and styles of one family.
type TypeFamily struct {
	familyName string
	typefaces  []*Typeface
}

// NewTypeFamily creates a type family. The typeface list is copied so the
// family is immutable after construction.
func NewTypeFamily(familyName string, typefaces []*Typeface) *TypeFamily {
	owned := make([]*Typeface, len(typefaces))
	copy(owned, typefaces)
	return &TypeFamily{familyName: familyName, typefaces: owned}
}

// FamilyName returns the name of this family.
func (f *TypeFamily) FamilyName() string { return f.familyName }

// Count returns the number of typefaces belonging to this family.
func (f *TypeFamily) Count() int { return len(f.typefaces) }

// Typeface returns the typeface at index i.
func (f *TypeFamily) Typeface(i int) *Typeface { return f.typefaces[i] }

// String returns a structural dump of the family.
func (f *TypeFamily) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TypeFamily{familyName=%s, typefaces=[", f.familyName)
	for i, tf := range f.typefaces {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tf.String())
	}
	b.WriteString("]}")
	return b.String()
}
