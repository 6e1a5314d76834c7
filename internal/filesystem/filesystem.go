package filesystem

import "os"

// FileSystem is the small seam the updater reads and writes its version
// cache through, so tests never touch the real disk.
type FileSystem interface {
	ReadFile(name string) (string, error)
	WriteFile(name string, content string) error
}

type DefaultFileSystem struct{}

func (fs DefaultFileSystem) ReadFile(name string) (string, error) {
	content, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func (fs DefaultFileSystem) WriteFile(name string, content string) error {
	return os.WriteFile(name, []byte(content), 0600)
}
