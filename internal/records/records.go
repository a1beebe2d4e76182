// Package records saves the results of matches to Parquet files, so they can be analysed
// later (e.g. with DuckDB or pandas).
package records

import (
	"os"
	"sync"
	"time"

	. "github.com/janpfeifer/goZero/internal/state"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// SchemaVersion is stored in the "schema" key of the files metadata.
const SchemaVersion = "match_v1"

// Match is one row of the records file: one finished (or interrupted) match.
type Match struct {
	MatchID int32   `parquet:"match_id"`
	Black   string  `parquet:"black,dict"`
	White   string  `parquet:"white,dict"`
	Width   int32   `parquet:"width"`
	Height  int32   `parquet:"height"`
	Komi    float32 `parquet:"komi"`

	// Moves in the usual notation, e.g.: "C3", "pass".
	Moves []string `parquet:"moves"`

	// Winner is "Black", "White" or "None".
	Winner string `parquet:"winner,dict"`

	// Score is Black's area score minus White's, komi included.
	Score      float32 `parquet:"score"`
	Finished   bool    `parquet:"finished"`
	DurationMs int64   `parquet:"duration_ms"`
}

// NewMatch creates the record of the match played in board, with the given moves.
func NewMatch(matchID int, black, white string, board *Board, moves []Move, duration time.Duration) Match {
	m := Match{
		MatchID:    int32(matchID),
		Black:      black,
		White:      white,
		Width:      int32(board.Width()),
		Height:     int32(board.Height()),
		Komi:       board.Komi,
		Moves:      make([]string, len(moves)),
		Winner:     PlayerNone.String(),
		Score:      board.Score(),
		Finished:   board.IsGameOver(),
		DurationMs: duration.Milliseconds(),
	}
	for ii, move := range moves {
		m.Moves[ii] = move.String()
	}
	if m.Finished {
		m.Winner = board.Winner().String()
	}
	return m
}

// Writer of match records. It is safe for concurrent use.
//
// Records are written to a temporary file, renamed to the final path on Close.
type Writer struct {
	mu            sync.Mutex
	path, tmpPath string
	file          *os.File
	writer        *parquet.GenericWriter[Match]
	numRows       int
}

// Create a Writer that will save the records to path.
func Create(path string) (*Writer, error) {
	w := &Writer{path: path, tmpPath: path + ".tmp"}
	var err error
	w.file, err = os.OpenFile(w.tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create records file %q", w.tmpPath)
	}
	w.writer = parquet.NewGenericWriter[Match](
		w.file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.writer.SetKeyValueMetadata("schema", SchemaVersion)
	return w, nil
}

// Write one match record.
func (w *Writer) Write(m Match) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer == nil {
		return errors.Errorf("records writer for %q is closed", w.path)
	}
	if _, err := w.writer.Write([]Match{m}); err != nil {
		return errors.Wrapf(err, "failed to write match %d to %q", m.MatchID, w.tmpPath)
	}
	w.numRows++
	return nil
}

// NumRows written so far.
func (w *Writer) NumRows() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.numRows
}

// Close flushes the records and moves the file to its final path. It is a no-op if already closed.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writer == nil {
		return nil
	}
	err := w.writer.Close()
	w.writer = nil
	if fileErr := w.file.Close(); err == nil {
		err = fileErr
	}
	w.file = nil
	if err != nil {
		return errors.Wrapf(err, "failed to close records file %q", w.tmpPath)
	}
	if err = os.Rename(w.tmpPath, w.path); err != nil {
		return errors.Wrapf(err, "failed to move records to %q", w.path)
	}
	if klog.V(1).Enabled() {
		klog.Infof("Saved %d match records to %q", w.numRows, w.path)
	}
	return nil
}

// ReadFile reads all match records from path.
func ReadFile(path string) ([]Match, error) {
	matches, err := parquet.ReadFile[Match](path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read match records from %q", path)
	}
	return matches, nil
}
