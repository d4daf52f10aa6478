package util

import (
	"log/slog"
	"os"
)

// CloseFileFunc closes f and logs the error, for use in defer.
func CloseFileFunc(f *os.File) {
	if err := f.Close(); err != nil {
		slog.Error("close file", "file", f.Name(), "err", err)
	}
}
