package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sbool-dev/sbool/config"
)

// funcVar is a flag.Value that hands every value to a function, so a flag may
// be given more than once.
type funcVar func(s string) error

func (f funcVar) Set(s string) error { return f(s) }
func (f funcVar) String() string     { return "" }
func (f funcVar) IsBoolFlag() bool   { return false }

// funcBoolVar is the boolean form of funcVar. It may be given as -name or
// -name=value.
type funcBoolVar func(b bool) error

func (f funcBoolVar) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	return f(v)
}
func (f funcBoolVar) String() string   { return "" }
func (f funcBoolVar) IsBoolFlag() bool { return true }

// flagConfigsVar implements the flag.Value interface and allows the user to
// specify multiple -flag keys in the CLI where each option is parsed as a
// named boolean.
type flagConfigsVar config.FlagConfigs

func (v *flagConfigsVar) Set(value string) error {
	f, err := config.ParseFlag(value)
	if err != nil {
		return err
	}

	*v = append(*v, f)
	return nil
}

func (v *flagConfigsVar) String() string {
	if v == nil {
		return ""
	}

	s := make([]string, 0, len(*v))
	for _, f := range *v {
		name := config.StringVal(f.Name)
		if f.Flavored() {
			name += fmt.Sprintf(":%v", f.Flavor)
		}
		s = append(s, name+"="+strconv.FormatBool(config.BoolVal(f.Value)))
	}
	return strings.Join(s, ",")
}
