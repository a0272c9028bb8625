package rewrite

import "os"

// ContentReader reads the content of a source file. It lets callers decide
// where sources come from.
type ContentReader func(filePath string) ([]byte, error)

// FilesystemReader reads files from disk.
func FilesystemReader(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}
