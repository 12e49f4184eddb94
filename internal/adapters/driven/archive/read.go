package archive

import (
	"context"
	"io"
)

// contextReader fails reads once ctx is done, so draining a large entry
// can be abandoned between chunks.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// drain reads r to EOF. Decryption and integrity checks run as the data
// is consumed, so a nil error means the password was right.
func drain(ctx context.Context, r io.Reader) error {
	_, err := io.Copy(io.Discard, contextReader{ctx: ctx, r: r})
	return err
}
