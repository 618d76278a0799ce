package scene

// Ease maps linear progress in [0,1] to eased progress.
type Ease func(t float64) float64

// EaseOutCubic decelerates towards the end. Used for enter transitions.
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// EaseInCubic accelerates from the start. Used for exit transitions.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }
