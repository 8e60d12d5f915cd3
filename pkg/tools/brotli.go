package tools

import (
	"io"

	"github.com/andybalholm/brotli"
)

type brotliReadCloser struct {
	io.Reader
	src io.Closer
}

func (r *brotliReadCloser) Close() error {
	return r.src.Close()
}

// UnBrotliReader wraps rc with a brotli decoder. Closing the result closes rc.
func UnBrotliReader(rc io.ReadCloser) io.ReadCloser {
	return &brotliReadCloser{Reader: brotli.NewReader(rc), src: rc}
}
