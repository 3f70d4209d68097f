// Package upload prepares single-pass request bodies for audio uploads.
package upload

import (
	"errors"
	"io"
	"iter"
	"os"
	"sync"
)

const DefaultChunkSize = 64 * 1024

var ErrBodyConsumed = errors.New("upload body has already been consumed")

// Length is the declared size of a body, when known.
type Length struct {
	n     int64
	known bool
}

func KnownLength(n int64) Length {
	return Length{n: n, known: true}
}

func UnknownLength() Length {
	return Length{}
}

func (l Length) Value() (int64, bool) {
	return l.n, l.known
}

// ContentLength maps the length onto http.Request.ContentLength semantics.
func (l Length) ContentLength() int64 {
	if !l.known {
		return -1
	}
	return l.n
}

// Body is a lazily read byte source that can be handed out exactly once.
// Close releases the source and deletes any temporary file the body owns.
type Body struct {
	mu          sync.Mutex
	source      io.ReadCloser
	length      Length
	contentType string
	taken       bool

	closeOnce sync.Once
	closeErr  error
	cleanup   []func() error
}

func newBody(source io.ReadCloser, length Length, contentType string, cleanup ...func() error) *Body {
	return &Body{
		source:      source,
		length:      length,
		contentType: contentType,
		cleanup:     cleanup,
	}
}

func (b *Body) Length() Length {
	return b.length
}

func (b *Body) ContentType() string {
	return b.contentType
}

// Take hands out the byte source. Closing the returned reader closes the body.
// Every later call fails with ErrBodyConsumed.
func (b *Body) Take() (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.taken {
		return nil, ErrBodyConsumed
	}
	b.taken = true
	return &bodyReader{body: b}, nil
}

// Chunks takes the body and yields it in pieces of at most size bytes. The
// slice is reused between iterations. The body is closed when iteration ends.
func (b *Body) Chunks(size int) iter.Seq2[[]byte, error] {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return func(yield func([]byte, error) bool) {
		reader, err := b.Take()
		if err != nil {
			yield(nil, err)
			return
		}
		defer reader.Close()

		buf := make([]byte, size)
		for {
			n, err := reader.Read(buf)
			if n > 0 {
				if !yield(buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// Close is idempotent and safe to call concurrently with the transport
// closing the reader returned by Take.
func (b *Body) Close() error {
	b.closeOnce.Do(func() {
		b.mu.Lock()
		b.taken = true
		b.mu.Unlock()

		errs := make([]error, 0, 1+len(b.cleanup))
		if b.source != nil {
			errs = append(errs, b.source.Close())
		}
		for _, fn := range b.cleanup {
			errs = append(errs, fn())
		}
		b.closeErr = errors.Join(errs...)
	})
	return b.closeErr
}

type bodyReader struct {
	body *Body
}

func (r *bodyReader) Read(p []byte) (int, error) {
	return r.body.source.Read(p)
}

func (r *bodyReader) Close() error {
	return r.body.Close()
}

// removeFile deletes path, treating an already missing file as success.
func removeFile(path string) func() error {
	return func() error {
		err := os.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
}
