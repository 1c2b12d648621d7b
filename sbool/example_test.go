package sbool_test

import (
	"fmt"

	"github.com/sbool-dev/sbool/sbool"
)

func Example() {
	valid := sbool.MustTruthy("is-valid")
	again := sbool.MustTruthy("is-valid")
	fmt.Println(valid == again)

	invalid := valid.Not()
	fmt.Println(invalid)

	both, _ := valid.And(invalid)
	fmt.Println(both)

	mixed, _ := valid.And(1)
	fmt.Println(mixed)

	_, err := valid.Add(0)
	fmt.Println(err != nil)

	// Output:
	// true
	// FBool(false, "is-valid")
	// FBool(false, "is-valid")
	// TRUTH
	// true
}
