package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
)

func ExampleNewLumberjack() {
	dir, err := os.MkdirTemp("", "xrotate-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "app.log")
	_ = os.WriteFile(file, []byte("hello\n"), 0o640)

	r, err := xrotate.NewLumberjack(file,
		xrotate.WithMaxBackups(3),
		xrotate.WithCompress(false),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	if err := r.Rotate(); err != nil {
		fmt.Println(err)
		return
	}
	info, _ := os.Stat(file)
	fmt.Println("size after rotate:", info.Size())
	// Output: size after rotate: 0
}
