package artifact

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"

	"falcon9/internal/model"
)

// sniffLen covers the gzip magic and the leading bytes of a JSON document.
const sniffLen = 512

// Decode reads a pipeline document, gunzipping it first when compressed.
func Decode(r io.Reader) (*model.Pipeline, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read artifact header: %w", err)
	}
	if len(head) == 0 {
		return nil, fmt.Errorf("artifact is empty")
	}

	mt := mimetype.Detect(head)
	switch {
	case mt.Is("application/gzip"):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip artifact: %w", err)
		}
		defer zr.Close()
		return model.Decode(zr)
	case mt.Is("application/json"), mt.Is("text/plain"):
		// short or truncated JSON sniffs as text/plain; the decoder has the final word
		return model.Decode(br)
	default:
		return nil, fmt.Errorf("unsupported artifact content type %s", mt.String())
	}
}
