package sbool

// Default is the process-wide registry used by the package level functions.
var Default = NewRegistry()

// Truth and Lie are the canonical unflavored singletons of Default.
var (
	Truth = Default.Truth()
	Lie   = Default.Lie()
)

// Obtain returns the Bool of the given polarity and flavor from Default.
func Obtain(truth bool, flavor interface{}) (*Bool, error) {
	return Default.Obtain(truth, flavor)
}

// Truthy returns the truthy Bool of the given flavor from Default.
func Truthy(flavor interface{}) (*Bool, error) {
	return Default.Truthy(flavor)
}

// Falsy returns the falsy Bool of the given flavor from Default.
func Falsy(flavor interface{}) (*Bool, error) {
	return Default.Falsy(flavor)
}

// MustTruthy is like Truthy but panics if the flavor is not comparable. It is
// meant for package level variables.
func MustTruthy(flavor interface{}) *Bool {
	b, err := Default.Truthy(flavor)
	if err != nil {
		panic(err)
	}
	return b
}

// MustFalsy is like Falsy but panics if the flavor is not comparable.
func MustFalsy(flavor interface{}) *Bool {
	b, err := Default.Falsy(flavor)
	if err != nil {
		panic(err)
	}
	return b
}

// Of returns Truth or Lie.
func Of(truth bool) *Bool {
	return Default.Of(truth)
}

// Not returns the sibling of b with the opposite polarity.
func Not(b *Bool) *Bool {
	return b.Not()
}

// And returns x & y, see Registry.Apply.
func And(x, y interface{}) (*Bool, error) {
	return Default.And(x, y)
}

// Or returns x | y, see Registry.Apply.
func Or(x, y interface{}) (*Bool, error) {
	return Default.Or(x, y)
}

// Xor returns x ^ y, see Registry.Apply.
func Xor(x, y interface{}) (*Bool, error) {
	return Default.Xor(x, y)
}

// Apply returns x <op> y, see Registry.Apply.
func Apply(op Op, x, y interface{}) (*Bool, error) {
	return Default.Apply(op, x, y)
}
