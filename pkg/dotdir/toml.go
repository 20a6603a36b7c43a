package dotdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ReadTOML decodes the TOML file at path into v. found is false, and v left
// untouched, when the file does not exist.
func ReadTOML(path string, v any) (found bool, err error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

// WriteTOML encodes v and replaces path with the result. The file is written
// with 0600 permissions and swapped in with a rename, so readers never see a
// partial file.
func WriteTOML(path string, v any) (err error) {
	name := filepath.Base(path)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+name+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(0o600); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
