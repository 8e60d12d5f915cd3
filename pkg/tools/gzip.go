package tools

import (
	"compress/gzip"
	"io"
)

type gzipReadCloser struct {
	*gzip.Reader
	src io.Closer
}

func (r *gzipReadCloser) Close() error {
	err := r.Reader.Close()
	if srcErr := r.src.Close(); err == nil {
		err = srcErr
	}
	return err
}

// GunzipReader wraps rc with a gzip decoder. Closing the result closes rc.
func GunzipReader(rc io.ReadCloser) (io.ReadCloser, error) {
	reader, err := gzip.NewReader(rc)
	if err != nil {
		return nil, err
	}
	return &gzipReadCloser{Reader: reader, src: rc}, nil
}
