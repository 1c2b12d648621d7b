package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// ValueToBoolFunc returns a function that converts strings such as "yes" or
// "off" and the integers 0 and 1 to bool values. This is designed to be used
// with mapstructure for parsing out flag values.
func ValueToBoolFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}

		v := reflect.ValueOf(data)
		switch f.Kind() {
		case reflect.String:
			return ParseBool(v.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return intToBool(v.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v.Uint() > 1 {
				return nil, fmt.Errorf("cannot use %d as a bool, must be 0 or 1", v.Uint())
			}
			return v.Uint() == 1, nil
		case reflect.Float32, reflect.Float64:
			fv := v.Float()
			if fv != 0 && fv != 1 {
				return nil, fmt.Errorf("cannot use %v as a bool, must be 0 or 1", fv)
			}
			return fv == 1, nil
		}

		return data, nil
	}
}

func intToBool(i int64) (bool, error) {
	switch i {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("cannot use %d as a bool, must be 0 or 1", i)
}
