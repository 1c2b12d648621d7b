package main

import (
	"log"
	"sort"
	"sync"

	"github.com/sbool-dev/sbool/expr"
)

var _ expr.Resolver = (*Brain)(nil)

// Brain is what the evaluator uses to look up the values bound to names in
// an expression.
type Brain struct {
	sync.Mutex

	data map[string]interface{}
}

// NewBrain creates a new Brain with no bindings.
func NewBrain() *Brain {
	return &Brain{
		data: make(map[string]interface{}),
	}
}

// Remember binds the given value to name, replacing any earlier binding.
func (b *Brain) Remember(name string, value interface{}) {
	b.Lock()
	defer b.Unlock()

	if _, ok := b.data[name]; ok {
		log.Printf("[DEBUG] (brain) rebinding %s", name)
	}
	b.data[name] = value
}

// Recall gets the value bound to name. The second return value reports
// whether a binding exists at all.
func (b *Brain) Recall(name string) (interface{}, bool) {
	b.Lock()
	defer b.Unlock()

	v, ok := b.data[name]
	return v, ok
}

// Remembered returns true if a value is bound to name.
func (b *Brain) Remembered(name string) bool {
	b.Lock()
	defer b.Unlock()

	_, ok := b.data[name]
	return ok
}

// Forget removes the binding for name.
func (b *Brain) Forget(name string) {
	b.Lock()
	defer b.Unlock()

	delete(b.data, name)
}

// Names returns the bound names, sorted.
func (b *Brain) Names() []string {
	b.Lock()
	defer b.Unlock()

	names := make([]string, 0, len(b.data))
	for name := range b.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
