package wire

import (
	"fmt"
	"io"
	"mime/multipart"
)

// Encoder writes a Multipart body to an underlying writer. It is built over a
// streaming writer (typically one end of an io.Pipe) so file parts are never
// buffered whole in memory.
type Encoder struct {
	w *multipart.Writer
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: multipart.NewWriter(w)}
}

// ContentType returns the Content-Type header value including the boundary.
func (e *Encoder) ContentType() string {
	return e.w.FormDataContentType()
}

// Encode writes all file parts followed by all string fields.
func (e *Encoder) Encode(mp *Multipart) error {
	for _, part := range mp.Parts {
		if err := e.writePart(part); err != nil {
			return fmt.Errorf("part %s: %w", part.Field, err)
		}
	}
	for name, value := range mp.Fields {
		if err := e.w.WriteField(name, value); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}

// Close finalizes the multipart boundary.
func (e *Encoder) Close() error {
	return e.w.Close()
}

func (e *Encoder) writePart(part Part) error {
	w, err := e.w.CreateFormFile(part.Field, part.FileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	_, err = io.Copy(w, part.Reader)
	return err
}
