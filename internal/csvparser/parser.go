// =============================================================================
// Coverage Report Generator - CSV Parser Module
// =============================================================================
//
// This module turns the raw text of a household-coverage survey export into
// an ordered sequence of field-keyed records. It is the first stage of the
// aggregation pipeline:
//
//   raw text -> Parser -> records -> Classifier + Aggregator -> report tree
//
// PARSING RULES:
//   - The text is split into lines on line-feed boundaries.
//   - The first line is the header; its comma-separated, trimmed values are
//     the ordered field names.
//   - Every following line is split on commas. Value i belongs to header i.
//     Missing trailing values become "", extra values are ignored.
//   - Values are trimmed. A line whose values are all empty is dropped.
//   - No type coercion happens here; every value stays a string.
//
// KNOWN LIMITATION:
//   Quoted fields and embedded commas are NOT supported. A value such as
//   "Nagar, East" is split into two positional values. Survey exports from
//   the field system never quote values, so the splitter stays literal.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// RECORD AND DATASET STRUCTURES
// =============================================================================

// Record is one data line of the survey, keyed by header name.
// Unknown fields are kept so renderers can show them if they want.
type Record map[string]string

// Get returns the value of a field, or "" if the record has no such field.
func (r Record) Get(field string) string {
	return r[field]
}

// CSVData represents a parsed survey file.
type CSVData struct {
	// Headers contains the trimmed column headers in file order.
	Headers []string

	// Rows contains the non-blank data lines as records.
	Rows []Record

	// LineNumbers holds the 1-based source line of each entry in Rows.
	// The header is line 1, so the first data line is line 2.
	LineNumbers []int

	// SourceFile is the path of the source file, empty for in-memory text.
	SourceFile string

	// RowCount is the number of records (blank lines excluded).
	RowCount int

	// ColumnCount is the number of header fields.
	ColumnCount int
}

// HasHeader reports whether the header line declared the given field.
func (d *CSVData) HasHeader(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse parses survey text that has already been read into memory.
// It never fails and never returns nil: malformed input degrades to empty
// headers or empty values.
func Parse(text string) *CSVData {
	data, _ := parse(strings.NewReader(text))
	return data
}

// ParseReader parses survey text from a reader.
//
// RETURNS:
//   - The parsed data.
//   - An error only if the reader itself fails (never for bad data).
func ParseReader(r io.Reader) (*CSVData, error) {
	data, err := parse(r)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// parse collects every record of r. The data read before a failure is
// returned along with the error.
func parse(r io.Reader) (*CSVData, error) {
	parser := NewStreamingParser(r)

	data := &CSVData{}
	for parser.Next() {
		data.Rows = append(data.Rows, parser.Row())
		data.LineNumbers = append(data.LineNumbers, parser.LineNumber())
	}

	data.Headers = parser.Headers()
	data.RowCount = len(data.Rows)
	data.ColumnCount = len(data.Headers)
	return data, parser.Err()
}

// ParseFile reads a survey file and parses it.
//
// The whole file is read before parsing starts, so a read failure never
// reaches the aggregation stages with partial input.
func ParseFile(filePath string) (*CSVData, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	data, err := ParseReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	data.SourceFile = filePath
	return data, nil
}

// FromRows builds a dataset from rows that were already split into cells,
// for example the rows of a spreadsheet. The first row is the header and the
// same trimming and blank-row rules as Parse apply.
func FromRows(rows [][]string) *CSVData {
	data := &CSVData{}
	if len(rows) == 0 {
		return data
	}

	data.Headers = cleanHeaders(rows[0])
	for i, row := range rows[1:] {
		record, ok := buildRecord(data.Headers, row)
		if !ok {
			continue
		}
		data.Rows = append(data.Rows, record)
		data.LineNumbers = append(data.LineNumbers, i+2)
	}

	data.RowCount = len(data.Rows)
	data.ColumnCount = len(data.Headers)
	return data
}

// splitLine splits a line on commas. No quote handling.
func splitLine(line string) []string {
	return strings.Split(line, ",")
}

// cleanHeaders trims header names. A header line that is blank yields an
// empty header list; blank names inside a non-blank line are kept as "".
func cleanHeaders(raw []string) []string {
	if isRowEmpty(raw) {
		return []string{}
	}

	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.TrimSpace(h)
	}
	return headers
}

// buildRecord maps positional values onto headers.
// It returns false when every mapped value is empty.
func buildRecord(headers []string, values []string) (Record, bool) {
	record := make(Record, len(headers))
	nonEmpty := false

	for i, header := range headers {
		value := ""
		if i < len(values) {
			value = strings.TrimSpace(values[i])
		}
		if value != "" {
			nonEmpty = true
		}
		record[header] = value
	}

	return record, nonEmpty
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser applies the parsing rules line by line.
//
// USAGE:
//   parser := NewStreamingParser(reader)
//   for parser.Next() {
//       record := parser.Row()
//       // Process the record...
//   }
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	reader        *bufio.Reader
	headers       []string
	headersRead   bool
	currentRow    Record
	lineNumber    int
	currentLineNo int
	eof           bool
	err           error
}

// NewStreamingParser creates a streaming parser over r. Lines have no
// length limit.
func NewStreamingParser(r io.Reader) *StreamingParser {
	return &StreamingParser{reader: bufio.NewReaderSize(r, 64*1024)}
}

// readLine returns the next line without its '\n'. A '\r' is left in place;
// values are trimmed later so CRLF input still parses cleanly.
func (p *StreamingParser) readLine() (string, bool) {
	if p.eof || p.err != nil {
		return "", false
	}

	line, err := p.reader.ReadString('\n')
	switch {
	case err == io.EOF:
		p.eof = true
		if line == "" {
			return "", false
		}
	case err != nil:
		p.err = fmt.Errorf("error reading line %d: %w", p.lineNumber+1, err)
		return "", false
	default:
		line = line[:len(line)-1]
	}

	p.lineNumber++
	return line, true
}

// readHeaders consumes the header line. An empty input has no headers.
func (p *StreamingParser) readHeaders() bool {
	p.headersRead = true
	p.headers = []string{}

	line, ok := p.readLine()
	if !ok {
		return false
	}
	p.headers = cleanHeaders(splitLine(line))
	return true
}

// Next advances to the next non-blank record.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}
	if !p.headersRead && !p.readHeaders() {
		return false
	}

	for {
		line, ok := p.readLine()
		if !ok {
			return false
		}

		record, ok := buildRecord(p.headers, splitLine(line))
		if !ok {
			continue
		}

		p.currentRow = record
		p.currentLineNo = p.lineNumber
		return true
	}
}

// Row returns the current record.
func (p *StreamingParser) Row() Record {
	return p.currentRow
}

// Headers returns the parsed headers. It is only complete after the first
// call to Next.
func (p *StreamingParser) Headers() []string {
	return p.headers
}

// LineNumber returns the 1-based source line of the current record.
func (p *StreamingParser) LineNumber() int {
	return p.currentLineNo
}

// Err returns any read error.
func (p *StreamingParser) Err() error {
	return p.err
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// GetColumnByHeader returns all values for a specific column.
func GetColumnByHeader(data *CSVData, header string) []string {
	values := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		values[i] = row[header]
	}
	return values
}

// GetUniqueValues returns the distinct values of a column in order of
// first appearance.
func GetUniqueValues(data *CSVData, header string) []string {
	seen := make(map[string]bool)
	var unique []string

	for _, value := range GetColumnByHeader(data, header) {
		if !seen[value] {
			seen[value] = true
			unique = append(unique, value)
		}
	}

	return unique
}

// FilterRows returns rows that match a filter condition.
func FilterRows(data *CSVData, filterFunc func(row Record) bool) []Record {
	var filtered []Record

	for _, row := range data.Rows {
		if filterFunc(row) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}
