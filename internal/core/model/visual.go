package model

// VisualState tags which layer a bound element belongs to.
type VisualState string

const (
	StateSelected   VisualState = "selected"
	StateMouseover  VisualState = "mouseover"
	StateBackground VisualState = "background"
)

// Valid reports whether s is one of the known tags.
func (s VisualState) Valid() bool {
	switch s {
	case StateSelected, StateMouseover, StateBackground:
		return true
	}
	return false
}
