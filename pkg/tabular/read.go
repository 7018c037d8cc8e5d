package tabular

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadLines loads a text payload into lines. The exporter is not
// consistent about encodings: newer files are UTF-8 (sometimes with a
// BOM), older ones are Windows-1252. Invalid UTF-8 input is transcoded.
func ReadLines(r io.Reader, maxSize int64) ([]string, error) {
	if maxSize <= 0 {
		maxSize = 16 << 20
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("payload exceeds %d bytes", maxSize)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("transcode windows-1252: %w", err)
		}
		data = decoded
	}

	raw := strings.Split(string(data), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines, nil
}

// ReadXLSX flattens the first worksheet of a spreadsheet export into the
// same line shape ReadLines produces, so one parser serves both formats.
func ReadXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, JoinFields(row))
	}
	return lines, nil
}

// ReadFile dispatches on extension: .xlsx goes through the spreadsheet
// reader, everything else is treated as delimited text.
func ReadFile(path string, maxSize int64) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(f)
	}
	return ReadLines(f, maxSize)
}
