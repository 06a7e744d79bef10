package report

import (
	"fmt"
	"os"
)

// SavePNG dumps a rendered plot to disk.
func SavePNG(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save plot %s: %v", path, err)
	}
	return nil
}
