//go:build windows

package table

// syncDir is a no-op: directories cannot be opened for fsync on Windows.
func syncDir(string) error {
	return nil
}
