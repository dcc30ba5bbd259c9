package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/gradebook/internal/messages"
)

// DefaultDiffMaxLines caps the overwrite preview shown per file.
const DefaultDiffMaxLines = 40

// ErrOverwriteDeclined is returned when the user keeps an existing export.
var ErrOverwriteDeclined = errors.New(messages.ExportOverwriteDeclined)

// OverwriteFunc is asked before replacing an existing file that differs.
// preview is a unified diff for text formats and empty for binary ones.
type OverwriteFunc func(path string, preview string) (bool, error)

// Writer places export artifacts into a directory.
type Writer struct {
	Dir string
	// Force overwrites existing files without asking.
	Force        bool
	DiffMaxLines int
	Overwrite    OverwriteFunc
	Out          io.Writer
}

// Write stores data under format's file name in w.Dir and returns the path.
// Identical content is left untouched.
func (w Writer) Write(format Format, data []byte) (string, error) {
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.ExportCreateDirFmt, dir, err)
	}
	path := filepath.Join(dir, format.FileName())
	out := w.Out
	if out == nil {
		out = io.Discard
	}

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return "", fmt.Errorf(messages.ExportReadExistingFmt, path, err)
	case bytes.Equal(existing, data):
		_, _ = fmt.Fprintf(out, messages.ExportUnchangedFmt, path)
		return path, nil
	case !w.Force:
		if w.Overwrite == nil {
			return "", ErrOverwriteDeclined
		}
		preview := ""
		if format != FormatXLSX {
			preview = DiffPreview(path, string(existing), string(data), w.DiffMaxLines)
		}
		ok, err := w.Overwrite(path, preview)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrOverwriteDeclined
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf(messages.ExportWriteFailedFmt, path, err)
	}
	_, _ = fmt.Fprintf(out, messages.ExportWrittenFmt, path)
	return path, nil
}

// DiffPreview renders a unified diff from current to next, truncated to maxLines.
func DiffPreview(path string, current string, next string, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultDiffMaxLines
	}
	diff := udiff.Unified(path+" (current)", path+" (new)", ensureTrailingNewline(current), ensureTrailingNewline(next))
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], fmt.Sprintf(messages.ExportDiffTruncatedFmt, maxLines))
	}
	return strings.Join(lines, "\n") + "\n"
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
