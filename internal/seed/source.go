package seed

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"restaurantapi/internal/storage"
)

// Source opens the raw seed dataset.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads the dataset from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening seed file '%s'", s.Path)
	}
	return f, nil
}

func (s FileSource) String() string {
	return "file:" + s.Path
}

// ObjectSource streams the dataset from object storage.
type ObjectSource struct {
	Store storage.Storage
	Key   string
}

func (s ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, _, err := s.Store.Get(ctx, s.Key)
	if err != nil {
		return nil, errors.Wrapf(err, "getting seed object '%s'", s.Key)
	}
	return rc, nil
}

func (s ObjectSource) String() string {
	return "object:" + s.Key
}
