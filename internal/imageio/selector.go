package imageio

import (
	"context"
	"strings"
)

// PathSelector answers the file prompt with a fixed path. An empty path is
// treated as a cancelled selection.
type PathSelector struct {
	Path string
}

func (s PathSelector) SelectImageFile(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path := strings.TrimSpace(s.Path)
	return path, path != "", nil
}
