package backend

// Reserved is the shared reserved-word disambiguation helper every backend
// delegates to, rather than six independent copies of the same lookup-and-
// suffix logic (SPEC_FULL §4.2 NEW).
type Reserved struct {
	words  map[string]struct{}
	suffix string
}

func NewReserved(words []string, suffix string) *Reserved {
	r := &Reserved{words: make(map[string]struct{}, len(words)), suffix: suffix}
	for _, w := range words {
		r.words[w] = struct{}{}
	}
	return r
}

func (r *Reserved) Is(name string) bool {
	_, ok := r.words[name]
	return ok
}

// Sanitize appends the configured suffix as many times as needed until the
// result no longer collides (a single pass suffices for every reserved-word
// list shipped with this module, but repeating until clear keeps the
// invariant true even if a backend's suffix itself collided).
func (r *Reserved) Sanitize(name string) string {
	for r.Is(name) {
		name += r.suffix
	}
	return name
}
