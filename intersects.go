package chaintable

// Container is anything that can answer membership for a value.
type Container interface {
	Contains(value string) bool
}

// Sequence is a bounded, indexable run of values: positions 0 to Len()-1.
type Sequence interface {
	Len() int
	At(i int) string
}

// Intersects reports whether any value of a is contained in b.
func Intersects(a Sequence, b Container) bool {
	if a == nil || b == nil {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if b.Contains(a.At(i)) {
			return true
		}
	}
	return false
}

// Strings adapts a string slice to Sequence and Container.
type Strings []string

// Len returns the number of values.
func (s Strings) Len() int { return len(s) }

// At returns the value at position i.
func (s Strings) At(i int) string { return s[i] }

// Contains reports whether value is present, by linear scan.
func (s Strings) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}
