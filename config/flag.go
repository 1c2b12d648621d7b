package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// HashedFlavor is the flavor key given to structured flavors (lists, maps,
// nested blocks) which cannot be used as keys directly.
type HashedFlavor uint64

func (h HashedFlavor) String() string {
	return fmt.Sprintf("hashed:%016x", uint64(h))
}

// FlagConfig declares a named boolean. A flag without a flavor binds to the
// unflavored pair.
type FlagConfig struct {
	// Name is the identifier the flag is bound to in expressions.
	Name *string `mapstructure:"name"`

	// Flavor is any scalar or structured value.
	Flavor interface{} `mapstructure:"flavor"`

	// Value is the polarity of the flag.
	Value *bool `mapstructure:"value"`
}

// DefaultFlagConfig returns a configuration that is populated with the
// default values.
func DefaultFlagConfig() *FlagConfig {
	return &FlagConfig{}
}

// Copy returns a deep copy of this configuration. Structured flavors are
// shared, they are never mutated.
func (c *FlagConfig) Copy() *FlagConfig {
	if c == nil {
		return nil
	}

	var o FlagConfig
	o.Name = StringCopy(c.Name)
	o.Flavor = c.Flavor
	o.Value = BoolCopy(c.Value)
	return &o
}

// Merge combines all values in this configuration with the values in the other
// configuration, with values in the other configuration taking precedence.
func (c *FlagConfig) Merge(o *FlagConfig) *FlagConfig {
	if c == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}

	if o == nil {
		return c.Copy()
	}

	r := c.Copy()

	if o.Name != nil {
		r.Name = o.Name
	}

	if o.Flavor != nil {
		r.Flavor = o.Flavor
	}

	if o.Value != nil {
		r.Value = o.Value
	}

	return r
}

// Finalize ensures there no nil pointers.
func (c *FlagConfig) Finalize() {
	if c.Name == nil {
		c.Name = String("")
	}

	if c.Value == nil {
		c.Value = Bool(false)
	}
}

// Flavored reports whether the flag names a flavor.
func (c *FlagConfig) Flavored() bool {
	return c.Flavor != nil
}

// FlavorKey returns a comparable key for the flavor. Comparable flavors are
// returned as they are; anything else is reduced to a HashedFlavor.
func (c *FlagConfig) FlavorKey() (interface{}, error) {
	if c.Flavor == nil {
		return nil, nil
	}

	if reflect.ValueOf(c.Flavor).Comparable() {
		return c.Flavor, nil
	}

	h, err := hashstructure.Hash(c.Flavor, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "flag %q: hashing flavor", StringVal(c.Name))
	}
	return HashedFlavor(h), nil
}

// GoString defines the printable version of this struct.
func (c *FlagConfig) GoString() string {
	if c == nil {
		return "(*FlagConfig)(nil)"
	}

	return fmt.Sprintf("&FlagConfig{"+
		"Name:%s, "+
		"Flavor:%#v, "+
		"Value:%s"+
		"}",
		StringGoString(c.Name),
		c.Flavor,
		BoolGoString(c.Value),
	)
}

// FlagConfigs is a collection of FlagConfigs.
type FlagConfigs []*FlagConfig

// DefaultFlagConfigs returns a configuration that is populated with the
// default values.
func DefaultFlagConfigs() *FlagConfigs {
	return &FlagConfigs{}
}

// Copy returns a deep copy of this configuration.
func (c *FlagConfigs) Copy() *FlagConfigs {
	if c == nil {
		return nil
	}

	o := make(FlagConfigs, len(*c))
	for i, f := range *c {
		o[i] = f.Copy()
	}
	return &o
}

// Merge combines all values in this configuration with the values in the other
// configuration. A flag in the other configuration replaces a flag of the same
// name in this one, otherwise it is appended.
func (c *FlagConfigs) Merge(o *FlagConfigs) *FlagConfigs {
	if c == nil {
		if o == nil {
			return nil
		}
		return o.Copy()
	}

	if o == nil {
		return c.Copy()
	}

	r := c.Copy()

	// Only flags of the receiver are replaced, and each at most once, so a
	// name repeated within o survives for Validate to report.
	own := len(*r)
	replaced := make([]bool, own)
	for _, f := range *o {
		found := false
		for i := 0; i < own; i++ {
			existing := (*r)[i]
			if replaced[i] || existing == nil || f == nil {
				continue
			}
			if StringVal(existing.Name) == StringVal(f.Name) {
				(*r)[i] = f.Copy()
				replaced[i] = true
				found = true
				break
			}
		}
		if !found {
			*r = append(*r, f.Copy())
		}
	}

	return r
}

// Finalize ensures the configuration has no nil pointers and sets default
// values.
func (c *FlagConfigs) Finalize() {
	if c == nil {
		return
	}

	for _, f := range *c {
		f.Finalize()
	}
}

// GoString defines the printable version of this struct.
func (c *FlagConfigs) GoString() string {
	if c == nil {
		return "(*FlagConfigs)(nil)"
	}

	s := make([]string, len(*c))
	for i, f := range *c {
		s[i] = f.GoString()
	}

	return "{" + strings.Join(s, ", ") + "}"
}

// ParseFlag parses the command line form "name[:flavor]=value". The flavor,
// when given, is always a string.
func ParseFlag(s string) (*FlagConfig, error) {
	eq := strings.LastIndex(s, "=")
	if eq == -1 {
		return nil, fmt.Errorf("flag %q: missing '=value'", s)
	}

	lhs, rhs := s[:eq], s[eq+1:]

	value, err := ParseBool(rhs)
	if err != nil {
		return nil, errors.Wrapf(err, "flag %q", s)
	}

	f := &FlagConfig{Value: Bool(value)}

	name := lhs
	if colon := strings.Index(lhs, ":"); colon != -1 {
		name = lhs[:colon]
		f.Flavor = lhs[colon+1:]
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("flag %q: missing name", s)
	}
	f.Name = String(name)

	return f, nil
}

// ParseBool accepts everything strconv.ParseBool accepts plus yes/no and
// on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}
