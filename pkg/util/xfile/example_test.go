package xfile_test

import (
	"fmt"

	"github.com/omeyang/xsink/pkg/util/xfile"
)

func ExampleSplitTarget() {
	dir, name, err := xfile.SplitTarget("/var/log/./app/service.log")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(dir)
	fmt.Println(name)
	// Output:
	// /var/log/app
	// service.log
}
