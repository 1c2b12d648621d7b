package sbool

import (
	"io"
	"log"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/sbool-dev/sbool/telemetry/counters"
)

// Registry owns the flavored singletons. For a given polarity and flavor it
// returns the same *Bool on every call, including concurrent first calls.
// Nothing is ever evicted.
type Registry struct {
	truthyLock sync.RWMutex
	truthy     map[interface{}]*Bool

	falsyLock sync.RWMutex
	falsy     map[interface{}]*Bool

	truth, lie *Bool

	logger atomic.Pointer[log.Logger]
}

var discard = log.New(io.Discard, "", 0)

// NewRegistry creates a new Registry holding only its unflavored pair.
func NewRegistry() *Registry {
	r := &Registry{
		truthy: make(map[interface{}]*Bool),
		falsy:  make(map[interface{}]*Bool),
	}

	r.truth = newBool(r, true, unflavored{})
	r.lie = newBool(r, false, unflavored{})
	r.truthy[unflavored{}] = r.truth
	r.falsy[unflavored{}] = r.lie
	r.logger.Store(discard)

	return r
}

// SetLogger sets where r reports the flavors it creates. Nothing is logged
// until a logger is set; a nil logger silences r again.
func (r *Registry) SetLogger(l *log.Logger) {
	if l == nil {
		l = discard
	}
	r.logger.Store(l)
}

// Truth returns the unflavored truthy singleton of r.
func (r *Registry) Truth() *Bool {
	return r.truth
}

// Lie returns the unflavored falsy singleton of r.
func (r *Registry) Lie() *Bool {
	return r.lie
}

// Of returns the unflavored singleton of the given polarity.
func (r *Registry) Of(truth bool) *Bool {
	if truth {
		return r.truth
	}
	return r.lie
}

// Obtain returns the Bool of the given polarity and flavor, creating it on
// first use. The flavor must be comparable and equal to itself, which rules
// out NaN; a nil flavor is allowed.
func (r *Registry) Obtain(truth bool, flavor interface{}) (*Bool, error) {
	if !validFlavor(flavor) {
		counters.CounterKeyTypeErrors.Add(1)
		return nil, &KeyTypeError{Flavor: flavor}
	}
	return r.obtain(truth, flavor), nil
}

// Truthy returns the truthy Bool of the given flavor.
func (r *Registry) Truthy(flavor interface{}) (*Bool, error) {
	return r.Obtain(true, flavor)
}

// Falsy returns the falsy Bool of the given flavor.
func (r *Registry) Falsy(flavor interface{}) (*Bool, error) {
	return r.Obtain(false, flavor)
}

// Len returns the number of truthy and falsy instances held by r, including
// the unflavored pair.
func (r *Registry) Len() (truthy, falsy int) {
	r.truthyLock.RLock()
	truthy = len(r.truthy)
	r.truthyLock.RUnlock()

	r.falsyLock.RLock()
	falsy = len(r.falsy)
	r.falsyLock.RUnlock()

	return truthy, falsy
}

// obtain looks up or creates the instance for an already validated flavor.
// Existing instances are found under the read lock; creation re-checks under
// the write lock so check-then-insert is atomic.
func (r *Registry) obtain(truth bool, flavor interface{}) *Bool {
	m, lock := r.falsy, &r.falsyLock
	if truth {
		m, lock = r.truthy, &r.truthyLock
	}

	lock.RLock()
	b, ok := m[flavor]
	lock.RUnlock()
	if ok {
		return b
	}

	lock.Lock()
	defer lock.Unlock()

	if b, ok := m[flavor]; ok {
		return b
	}

	b = newBool(r, truth, flavor)
	m[flavor] = b

	r.logger.Load().Printf("[TRACE] (registry) created %s", b)
	counters.CounterFlavorsCreated.Add(1,
		counters.NewLabel("polarity", polarity(truth)))

	return b
}

// Apply composes x and y with op. At least one of them is expected to be a
// *Bool, but plain integers and bools are accepted in either position, so
// Apply(op, 1, b) and Apply(op, b, 1) agree.
//
// When both operands are Bools of the same flavor from the same registry the
// result stays in that flavor. Every other combination collapses to the
// unflavored singleton of r.
func (r *Registry) Apply(op Op, x, y interface{}) (*Bool, error) {
	if !op.Logical() {
		counters.CounterDomainErrors.Add(1, counters.NewLabel("op", op.String()))
		return nil, newDomainError(op, x, y, "arithmetic is not defined for sbool.Bool")
	}

	xv, err := operand(op, x, y, x)
	if err != nil {
		counters.CounterDomainErrors.Add(1, counters.NewLabel("op", op.String()))
		return nil, err
	}
	yv, err := operand(op, x, y, y)
	if err != nil {
		counters.CounterDomainErrors.Add(1, counters.NewLabel("op", op.String()))
		return nil, err
	}

	truth := logic(op, xv, yv) == 1

	xb, _ := x.(*Bool)
	yb, _ := y.(*Bool)
	if xb != nil && yb != nil && xb.reg == yb.reg && xb.flavor == yb.flavor {
		return xb.reg.obtain(truth, xb.flavor), nil
	}

	return r.Of(truth), nil
}

// And returns x & y.
func (r *Registry) And(x, y interface{}) (*Bool, error) {
	return r.Apply(OpAnd, x, y)
}

// Or returns x | y.
func (r *Registry) Or(x, y interface{}) (*Bool, error) {
	return r.Apply(OpOr, x, y)
}

// Xor returns x ^ y.
func (r *Registry) Xor(x, y interface{}) (*Bool, error) {
	return r.Apply(OpXor, x, y)
}

func validFlavor(flavor interface{}) bool {
	if flavor == nil {
		return true
	}
	// NaN never finds its own map entry.
	return reflect.ValueOf(flavor).Comparable() && flavor == flavor
}

func polarity(truth bool) string {
	if truth {
		return "truthy"
	}
	return "falsy"
}
