// Package output owns the flat-file sink: one tab-separated row per
// comment, written incrementally as records arrive.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/spacesedan/commentharvest/internal/models"
)

// TSVWriter appends CommentRecords to a single file created (truncated) at
// construction. Columns are platform, postedAt, comment with no header and
// no escaping; comment text containing tabs or newlines will corrupt row
// structure, a known limitation of the format. Paths ending in .gz are
// gzip-compressed transparently.
type TSVWriter struct {
	file *os.File
	gz   *gzip.Writer
	buf  *bufio.Writer
	rows int
}

func NewTSVWriter(path string) (*TSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := &TSVWriter{file: file}
	var inner io.Writer = file
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(file)
		inner = w.gz
	}
	w.buf = bufio.NewWriter(inner)
	return w, nil
}

func (w *TSVWriter) WriteRecord(record models.CommentRecord) error {
	_, err := fmt.Fprintf(w.buf, "%s\t%s\t%s\n", record.Platform, record.PostedAt, record.Comment)
	if err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	w.rows++
	return nil
}

// Rows reports how many records have been written so far.
func (w *TSVWriter) Rows() int {
	return w.rows
}

// Close flushes the buffer, finishes the gzip stream if any, and closes the
// file. Rows written before a mid-run failure stay on disk.
func (w *TSVWriter) Close() error {
	err := w.buf.Flush()
	if w.gz != nil {
		if cerr := w.gz.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}
