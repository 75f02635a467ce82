package backend

import "fmt"

// Factory constructs a fresh Backend instance for one compilation; backends
// are stateful (they own an emission arena) so the registry hands out
// constructors, not shared instances.
type Factory func() Backend

var registry = map[string]Factory{}

// Register associates tag with a backend factory. Concrete backends call
// this from an init() in their own package (SPEC_FULL-grounded on the
// teacher's own per-language gen packages, each self-registering rather
// than the driver importing every target unconditionally).
func Register(tag string, f Factory) {
	registry[tag] = f
}

// Lookup constructs a new backend instance for tag.
func Lookup(tag string) (Backend, error) {
	f, ok := registry[tag]
	if !ok {
		return nil, fmt.Errorf("unknown target %q", tag)
	}
	return f(), nil
}

// Tags lists every registered target selector.
func Tags() []string {
	tags := make([]string, 0, len(registry))
	for t := range registry {
		tags = append(tags, t)
	}
	return tags
}
