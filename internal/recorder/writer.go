package recorder

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"

	"main/internal/market"
)

// Writer journals market events to a JSONL file, one event per line.
// It is owned by the feed goroutine and is not safe for concurrent use.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewWriter opens the journal for appending, creating parent
// directories as needed.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create journal dir")
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	buf := bufio.NewWriter(file)
	return &Writer{
		file: file,
		buf:  buf,
		enc:  json.NewEncoder(buf),
	}, nil
}

// Append journals one event.
func (w *Writer) Append(ev *market.Event) error {
	if err := w.enc.Encode(toRecord(ev)); err != nil {
		return errors.Wrap(err, "append event")
	}
	return nil
}

// Close flushes and syncs the journal.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return errors.Wrap(err, "flush journal")
	}
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return errors.Wrap(err, "sync journal")
	}
	return w.file.Close()
}
