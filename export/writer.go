package export

import (
	"os"

	"github.com/pkg/errors"
)

// WriteFile writes the serialized result, refusing to overwrite an existing
// file unless force is set.
func WriteFile(path string, bs []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf(`destination file "%s" exists; pass force to overwrite`, path)
		}
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return errors.Wrapf(err, `WriteFile error writing "%s"`, path)
	}
	return nil
}
