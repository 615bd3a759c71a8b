// Package naming assigns collision-free generated names to class
// identifiers and rewrites selectors to use them.
//
// A Registry belongs to exactly one conversion run. It is not safe for
// concurrent use; concurrent runs each create their own.
package naming

import (
	"fmt"
	"regexp"
)

// DefaultPrefix is prepended to every generated identifier.
const DefaultPrefix = "html2wf-"

// identPattern matches identifiers that can be reused verbatim after the prefix.
var identPattern = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)

// Mapping is one original -> generated pair.
type Mapping struct {
	Original  string `json:"original"`
	Generated string `json:"generated"`
}

// Registry is a bidirectional original <-> generated class name store.
// Both maps are always mutual inverses.
type Registry struct {
	prefix  string
	forward map[string]string // original -> generated
	reverse map[string]string // generated -> original
	order   []string          // originals in registration order
	counter int
}

// NewRegistry creates an empty registry. An empty prefix selects DefaultPrefix.
func NewRegistry(prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Registry{
		prefix:  prefix,
		forward: make(map[string]string),
		reverse: make(map[string]string),
	}
}

// Prefix returns the configured prefix.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Generate returns the generated name for original, registering it on
// first sight. Repeated calls with the same input never allocate again.
func (r *Registry) Generate(original string) string {
	if generated, ok := r.forward[original]; ok {
		return generated
	}

	proposal := r.prefix + original
	if !identPattern.MatchString(original) {
		proposal = fmt.Sprintf("%sclass-%d", r.prefix, r.counter)
	}

	generated := proposal
	for i := 1; r.taken(generated); i++ {
		generated = fmt.Sprintf("%s-%d", proposal, i)
	}

	r.forward[original] = generated
	r.reverse[generated] = original
	r.order = append(r.order, original)
	r.counter++
	return generated
}

func (r *Registry) taken(name string) bool {
	_, ok := r.reverse[name]
	return ok
}

// LookupGenerated returns the generated name for original, if registered.
func (r *Registry) LookupGenerated(original string) (string, bool) {
	generated, ok := r.forward[original]
	return generated, ok
}

// LookupOriginal returns the original name for generated, if registered.
func (r *Registry) LookupOriginal(generated string) (string, bool) {
	original, ok := r.reverse[generated]
	return original, ok
}

// IsGenerated reports whether name was produced by this registry.
func (r *Registry) IsGenerated(name string) bool {
	return r.taken(name)
}

// Len returns the number of registered originals.
func (r *Registry) Len() int {
	return len(r.order)
}

// Mappings returns every pair in registration order.
func (r *Registry) Mappings() []Mapping {
	out := make([]Mapping, 0, len(r.order))
	for _, original := range r.order {
		out = append(out, Mapping{Original: original, Generated: r.forward[original]})
	}
	return out
}

// Reset clears every mapping and the counter. Only call between runs.
func (r *Registry) Reset() {
	r.forward = make(map[string]string)
	r.reverse = make(map[string]string)
	r.order = nil
	r.counter = 0
}
