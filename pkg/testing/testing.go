package testing

import (
	"os"
	"path/filepath"
	"runtime"
)

// Importing this package for side effects moves the test process to the module
// root, so every package logs into <root>/logs and resolves relative paths the
// same way:
//
//	import (
//	  _ "liyu1981.xyz/hub-alert-service/pkg/testing"
//	)
func init() {
	_, filename, _, _ := runtime.Caller(0)

	root, err := moduleRoot(filepath.Dir(filename))
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(root); err != nil {
		panic(err)
	}
}

// moduleRoot walks up from dir to the first directory holding go.mod.
func moduleRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
