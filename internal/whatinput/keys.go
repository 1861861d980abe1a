package whatinput

import "sort"

// Key codes of the modifier keys ignored by default.
const (
	KeyShift     = 16
	KeyControl   = 17
	KeyAlt       = 18
	KeyMetaLeft  = 91 // Windows key / left command
	KeyMetaRight = 93 // Windows menu / right command
)

// DefaultIgnoredKeys returns the modifier keys that are commonly held while
// using the mouse and must not count as keyboard input.
func DefaultIgnoredKeys() []int {
	return []int{KeyShift, KeyControl, KeyAlt, KeyMetaLeft, KeyMetaRight}
}

// KeyPolicy decides which key codes count as keyboard input.
//
// When the specific set is non-empty only its codes qualify and the ignore
// set is not consulted. Otherwise every code outside the ignore set
// qualifies.
type KeyPolicy struct {
	ignored  map[int]struct{}
	specific map[int]struct{}
}

// NewKeyPolicy returns a policy with the default ignore set and no specific
// keys.
func NewKeyPolicy() KeyPolicy {
	return KeyPolicy{
		ignored:  toSet(DefaultIgnoredKeys()),
		specific: map[int]struct{}{},
	}
}

// SetIgnored replaces the ignore set.
func (p *KeyPolicy) SetIgnored(codes []int) {
	p.ignored = toSet(codes)
}

// SetSpecific replaces the specific set.
func (p *KeyPolicy) SetSpecific(codes []int) {
	p.specific = toSet(codes)
}

// Qualifies reports whether code counts as keyboard input.
func (p *KeyPolicy) Qualifies(code int) bool {
	if len(p.specific) > 0 {
		_, ok := p.specific[code]
		return ok
	}
	_, ignored := p.ignored[code]
	return !ignored
}

// Ignored returns the ignore set in ascending order.
func (p *KeyPolicy) Ignored() []int {
	return fromSet(p.ignored)
}

// Specific returns the specific set in ascending order.
func (p *KeyPolicy) Specific() []int {
	return fromSet(p.specific)
}

func toSet(codes []int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

func fromSet(set map[int]struct{}) []int {
	codes := make([]int, 0, len(set))
	for c := range set {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
