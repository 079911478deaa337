package cache

// keyVersion is bumped whenever the cached result encoding changes, which
// orphans every older entry.
const keyVersion = "v1"

// Keyer derives cache keys.
type Keyer interface {
	// SolveKey identifies the result of searching gridText with mode.
	// gridText must be the canonical text form so that equivalent inputs
	// ("S..E" and "S . . E") share a key.
	SolveKey(gridText, mode string) string
}

// DefaultKeyer produces unprefixed keys of the form "solve:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) SolveKey(gridText, mode string) string {
	return hashKey("solve", keyVersion, mode, gridText)
}

var _ Keyer = DefaultKeyer{}
