package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrUnknownFormat = errors.New("unknown report format")

// createFile opens the report destination; tests swap it out.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// Write renders the report to w as "text" or indented "json".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "text":
		return r.WriteText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile renders the report into path. A failed close is returned when the write succeeded,
// since buffered data may not have reached the file.
func (r *Report) WriteFile(path, format string) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return r.Write(f, format)
}
