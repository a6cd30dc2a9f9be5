// Package element defines the combination record and the string
// normalization rules the resolution engine depends on.
package element

// KeySeparator joins the two element names into a storage key.
// Keys are built from the literal, case-preserving input strings so a
// stored record can always be found again by replaying the same names.
const KeySeparator = "_"

// Combination is one resolved pairing of two elements. Element order is
// the order the pair was first requested in; it matters for the storage
// key but not for lookup semantics.
type Combination struct {
	Element1 string `json:"element1"`
	Element2 string `json:"element2"`

	// Result is the decorated name: a short human-readable name plus a
	// trailing decorative symbol with no separating space.
	Result string `json:"result"`
}

// Key returns the forward storage key for the combination.
func (c *Combination) Key() string {
	return Key(c.Element1, c.Element2)
}

// ReverseKey returns the storage key for the swapped element order.
func (c *Combination) ReverseKey() string {
	return Key(c.Element2, c.Element1)
}

// Key builds the storage key for an ordered pair of element names.
func Key(element1, element2 string) string {
	return element1 + KeySeparator + element2
}
