// Package export renders the roster as downloadable artifacts.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
)

// fileBase is the artifact name without extension.
const fileBase = "gradebook_export"

// ErrEmptyRoster is returned for table formats when there is nothing to export.
var ErrEmptyRoster = errors.New(messages.ExportEmptyRoster)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatXLSX, FormatHTML}
}

// ParseFormat maps a name (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf(messages.ExportUnknownFormatFmt, name)
}

// FileName returns the artifact file name, e.g. gradebook_export.csv.
func (f Format) FileName() string {
	return fileBase + "." + string(f)
}

// Render encodes students in format. columns is the roster column count and
// sets the number of grade headers.
func Render(format Format, students []roster.Student, columns int) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSON(students)
	case FormatCSV:
		return CSV(students, columns)
	case FormatXLSX:
		return XLSX(students, columns)
	case FormatHTML:
		return HTML(students, columns)
	default:
		return nil, fmt.Errorf(messages.ExportUnknownFormatFmt, format)
	}
}

// JSON pretty prints the raw record sequence. An empty roster is "[]".
func JSON(students []roster.Student) ([]byte, error) {
	if students == nil {
		students = []roster.Student{}
	}
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return nil, fmt.Errorf(messages.ExportEncodeFailedFmt, FormatJSON, err)
	}
	return data, nil
}

// Header returns the table header: Surname, Name, Grade 1..Grade columns.
func Header(columns int) []string {
	header := []string{messages.ExportCSVHeaderSurname, messages.ExportCSVHeaderName}
	for i := 1; i <= columns; i++ {
		header = append(header, fmt.Sprintf(messages.ExportCSVHeaderGradeFmt, i))
	}
	return header
}

// Row returns the table cells for one student.
func Row(student roster.Student) []string {
	row := []string{student.Surname, student.Name}
	for _, g := range student.Grades {
		row = append(row, string(g))
	}
	return row
}

// CSV renders the header line bare and every data cell double quoted, with
// embedded quotes doubled. Lines are joined with "\n".
func CSV(students []roster.Student, columns int) ([]byte, error) {
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}
	lines := make([]string, 0, len(students)+1)
	lines = append(lines, strings.Join(Header(columns), ","))
	for _, student := range students {
		cells := Row(student)
		for i, cell := range cells {
			cells[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

// XLSX renders the table as a single-sheet workbook.
func XLSX(students []roster.Student, columns int) ([]byte, error) {
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := messages.ExportSheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf(messages.ExportEncodeFailedFmt, FormatXLSX, err)
	}
	rows := [][]string{Header(columns)}
	for _, student := range students {
		rows = append(rows, Row(student))
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf(messages.ExportEncodeFailedFmt, FormatXLSX, err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return nil, fmt.Errorf(messages.ExportEncodeFailedFmt, FormatXLSX, err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf(messages.ExportEncodeFailedFmt, FormatXLSX, err)
	}
	return buf.Bytes(), nil
}
