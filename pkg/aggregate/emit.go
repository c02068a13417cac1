// File: pkg/aggregate/emit.go
package aggregate

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
)

// HeaderMarker starts every record header line.
const HeaderMarker = "########"

// Header returns the header line of the record for relPath.
func Header(relPath string) string {
	return HeaderMarker + " " + relPath + "\n"
}

// Emit truncates or creates the output file and writes one record per file, in the
// given order: the header line, the file's bytes verbatim, then a newline. Source
// files are streamed one at a time. If the output file is itself one of the files,
// its record carries the content it had before truncation. It returns the number of
// bytes written.
func (a *Aggregator) Emit(files []File) (written int64, err error) {
	outputPath := a.OutputPath()
	a.logger.Debug("Writing records to output file", zap.String("output", outputPath), zap.Int("recordCount", len(files)))

	snapshots, err := snapshotOutput(files, outputPath)
	if err != nil {
		return 0, err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return 0, &Error{Kind: Write, Path: outputPath, Err: err}
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = &Error{Kind: Write, Path: outputPath, Err: closeErr}
		}
	}()

	writer := bufio.NewWriter(outFile)
	for _, f := range files {
		n, err := a.writeRecord(writer, f, outputPath, snapshots)
		written += n
		if err != nil {
			return written, err
		}
	}

	if err := writer.Flush(); err != nil {
		return written, &Error{Kind: Write, Path: outputPath, Err: err}
	}
	return written, nil
}

// writeRecord writes a single record and classifies any failure as Read or Write.
// Content held in snapshots is used instead of reopening the file.
func (a *Aggregator) writeRecord(w io.Writer, f File, outputPath string, snapshots map[string][]byte) (int64, error) {
	var written int64

	n, err := io.WriteString(w, Header(f.RelPath))
	written += int64(n)
	if err != nil {
		return written, &Error{Kind: Write, Path: outputPath, Err: err}
	}

	var in io.Reader
	if content, ok := snapshots[f.Path]; ok {
		in = bytes.NewReader(content)
	} else {
		file, err := os.Open(f.Path)
		if err != nil {
			return written, &Error{Kind: Read, Path: f.Path, Err: err}
		}
		defer file.Close()
		in = file
	}

	src := &trackingReader{r: in}
	copied, err := io.Copy(w, src)
	written += copied
	if err != nil {
		if src.err != nil {
			return written, &Error{Kind: Read, Path: f.Path, Err: src.err}
		}
		return written, &Error{Kind: Write, Path: outputPath, Err: err}
	}

	n, err = io.WriteString(w, "\n")
	written += int64(n)
	if err != nil {
		return written, &Error{Kind: Write, Path: outputPath, Err: err}
	}

	a.logger.Debug("Wrote record", zap.String("filePath", f.RelPath), zap.Int64("contentSizeBytes", copied))
	return written, nil
}

// snapshotOutput reads the current content of the output file when it is part of the
// file set, since creating the output truncates it before its record is written.
func snapshotOutput(files []File, outputPath string) (map[string][]byte, error) {
	for _, f := range files {
		if f.Path != outputPath {
			continue
		}
		content, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, &Error{Kind: Read, Path: f.Path, Err: err}
		}
		return map[string][]byte{f.Path: content}, nil
	}
	return nil, nil
}

// trackingReader remembers the first non-EOF error from its source so a failed copy
// can be blamed on the right side.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && t.err == nil {
		t.err = err
	}
	return n, err
}
