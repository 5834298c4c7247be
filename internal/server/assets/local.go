package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/jpcdigital/ebookpay/internal/common"
)

// Local serves the e-book from a fixed path on disk.
type Local struct {
	path string
}

func NewLocal(path string) *Local {
	return &Local{path: path}
}

func (l *Local) Open(ctx context.Context) (*Asset, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("stat %s: %w", l.path, err)
	}

	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}

	return &Asset{
		Content:     f,
		Size:        info.Size(),
		ContentType: contentTypeFor(l.path),
	}, nil
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
