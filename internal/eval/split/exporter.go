package split

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// SampleColumns is the column layout of the sample files produced by the
	// graph creation step.
	SampleColumns = []string{"id1", "edgeType", "id2", "qscore", "value"}
	// TripleColumns is the subset re-emitted for the rule learner.
	TripleColumns = []string{"id1", "edgeType", "id2"}
)

const (
	TrainFile = "train.txt"
	TestFile  = "test.txt"
	ValidFile = "valid.txt"
)

// Paths names the input split files. Empty fields are skipped.
type Paths struct {
	Train string
	Test  string
	Valid string
}

type Exporter struct {
	outputDir string
	columns   []string
	keep      []string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		columns:   SampleColumns,
		keep:      TripleColumns,
	}
}

// Export re-emits each configured split as a headerless TSV restricted to
// the triple columns, named train.txt, test.txt and valid.txt.
func (e *Exporter) Export(p Paths) error {
	jobs := []struct {
		in, out string
	}{
		{p.Train, TrainFile},
		{p.Test, TestFile},
		{p.Valid, ValidFile},
	}

	for _, j := range jobs {
		if j.in == "" {
			continue
		}
		out := filepath.Join(e.outputDir, j.out)
		n, err := e.exportFile(j.in, out)
		if err != nil {
			return fmt.Errorf("export %s: %w", j.in, err)
		}
		slog.Info("Split exported", "source", j.in, "target", out, "rows", n)
	}
	return nil
}

func (e *Exporter) exportFile(in, out string) (int, error) {
	src, err := os.Open(in)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return 0, err
	}

	n, err := e.Copy(src, dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Copy streams tab separated rows from r to w keeping only the triple columns.
func (e *Exporter) Copy(r io.Reader, w io.Writer) (int, error) {
	idx, err := columnIndexes(e.columns, e.keep)
	if err != nil {
		return 0, err
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	var rows int
	row := make([]string, len(idx))
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read row %d: %w", rows+1, err)
		}

		for i, c := range idx {
			if c >= len(rec) {
				return rows, fmt.Errorf("row %d has %d columns, need column %q", rows+1, len(rec), e.keep[i])
			}
			row[i] = rec[c]
		}
		if err := writer.Write(row); err != nil {
			return rows, err
		}
		rows++
	}

	writer.Flush()
	return rows, writer.Error()
}

func columnIndexes(columns, keep []string) ([]int, error) {
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		pos[c] = i
	}
	idx := make([]int, len(keep))
	for i, k := range keep {
		p, ok := pos[k]
		if !ok {
			return nil, fmt.Errorf("unknown column %q", k)
		}
		idx[i] = p
	}
	return idx, nil
}
