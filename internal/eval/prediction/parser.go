package prediction

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	linesPerRecord = 3
	// sidePrefixLen is the length of the "Heads: " / "Tails: " marker on candidate lines.
	sidePrefixLen = 7
)

type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed prediction file %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed prediction file %s: %s", e.Path, e.Reason)
}

// ReadFile reads and parses a whole prediction file.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prediction file: %w", err)
	}
	defer f.Close()

	records, err := Parse(f, path)
	if err != nil {
		return nil, err
	}

	slog.Debug("Prediction file parsed", "path", path, "records", len(records))
	return records, nil
}

// Parse reads repeating 3-line groups: the space separated triple, then the
// head-side and tail-side candidate lines. Candidate lines carry a 7 character
// prefix followed by tab separated (entity, confidence) pairs.
// name is only used in error messages.
func Parse(r io.Reader, name string) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read prediction file: %w", err)
	}

	lines := splitLines(string(data))
	if len(lines)%linesPerRecord != 0 {
		return nil, &FormatError{
			Path:   name,
			Reason: fmt.Sprintf("line count %d is not a multiple of %d", len(lines), linesPerRecord),
		}
	}

	records := make([]Record, 0, len(lines)/linesPerRecord)
	for i := 0; i < len(lines); i += linesPerRecord {
		rec, err := parseGroup(lines[i:i+linesPerRecord], name, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

func parseGroup(group []string, name string, firstLine int) (Record, error) {
	fields := strings.Split(group[0], " ")
	if len(fields) != 3 {
		return Record{}, &FormatError{
			Path:   name,
			Line:   firstLine,
			Reason: fmt.Sprintf("expected triple of 3 fields, got %d", len(fields)),
		}
	}
	triple := Triple{Head: fields[0], Relation: fields[1], Tail: fields[2]}

	heads, headConfs, err := parseCandidates(group[1], name, firstLine+1)
	if err != nil {
		return Record{}, err
	}
	tails, tailConfs, err := parseCandidates(group[2], name, firstLine+2)
	if err != nil {
		return Record{}, err
	}

	rec, err := NewRecord(triple, heads, headConfs, tails, tailConfs)
	if err != nil {
		return Record{}, &FormatError{Path: name, Line: firstLine, Reason: err.Error()}
	}
	return rec, nil
}

func parseCandidates(line string, name string, lineNo int) ([]string, []float64, error) {
	if len(line) <= sidePrefixLen {
		return []string{}, []float64{}, nil
	}

	var tokens []string
	for _, tok := range strings.Split(line[sidePrefixLen:], "\t") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens)%2 != 0 {
		return nil, nil, &FormatError{
			Path:   name,
			Line:   lineNo,
			Reason: fmt.Sprintf("odd number of candidate tokens (%d)", len(tokens)),
		}
	}

	entities := make([]string, 0, len(tokens)/2)
	confidences := make([]float64, 0, len(tokens)/2)
	for j := 0; j < len(tokens); j += 2 {
		conf, err := strconv.ParseFloat(tokens[j+1], 64)
		if err != nil {
			return nil, nil, &FormatError{
				Path:   name,
				Line:   lineNo,
				Reason: fmt.Sprintf("invalid confidence %q for %q", tokens[j+1], tokens[j]),
			}
		}
		entities = append(entities, tokens[j])
		confidences = append(confidences, conf)
	}

	return entities, confidences, nil
}
