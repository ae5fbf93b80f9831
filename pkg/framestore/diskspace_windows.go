//go:build windows

package framestore

// diskSpace is not implemented on Windows; usage percentages degrade to zero.
func diskSpace(path string) (total, free int64, err error) {
	return 0, 0, nil
}
