package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// hourLayout names the UTC hour a trace file covers.
const hourLayout = "2006-01-02-15"

// HourPath is the file the records written during t's UTC hour land in:
// <dir>/<prefix>-2006-01-02-15.jsonl.zst.
func HourPath(dir, prefix string, t time.Time) string {
	return filepath.Join(dir, prefix+"-"+t.UTC().Format(hourLayout)+".jsonl.zst")
}

// segment is one open hourly file. Each segment is its own zstd frame, so
// a file reopened after a restart simply gains another frame.
type segment struct {
	path string
	f    *os.File
	enc  *zstd.Encoder
	buf  *bufio.Writer
	out  *json.Encoder
}

func openSegment(path string) (*segment, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	buf := bufio.NewWriterSize(enc, 64*1024)
	return &segment{path: path, f: f, enc: enc, buf: buf, out: json.NewEncoder(buf)}, nil
}

// append writes v as one line and pushes it through to the compressor.
func (s *segment) append(v any) error {
	if err := s.out.Encode(v); err != nil {
		return err
	}
	return s.buf.Flush()
}

func (s *segment) close() error {
	err := s.buf.Flush()
	if cerr := s.enc.Close(); err == nil {
		err = cerr
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Writer appends JSON lines to zstd-compressed files, one per UTC hour.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time

	mu    sync.Mutex
	cur   *segment
	lines int
}

func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Write appends v as one line, moving to a new file when the hour changes.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := HourPath(w.dir, w.prefix, w.now())
	if w.cur == nil || w.cur.path != path {
		if err := w.closeLocked(); err != nil {
			return err
		}
		seg, err := openSegment(path)
		if err != nil {
			return fmt.Errorf("trace: open %s: %w", path, err)
		}
		w.cur = seg
	}
	if err := w.cur.append(v); err != nil {
		return err
	}
	w.lines++
	return nil
}

// Lines is the number of records written since the writer was created.
func (w *Writer) Lines() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lines
}

// Close flushes and closes the current file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) closeLocked() error {
	if w.cur == nil {
		return nil
	}
	err := w.cur.close()
	w.cur = nil
	return err
}

// Files lists the writer's hourly files under dir, oldest first.
func Files(dir, prefix string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, prefix+"-*.jsonl.zst"))
	if err != nil {
		return nil, err
	}
	// the hour layout sorts lexically in time order
	slices.Sort(paths)
	return paths, nil
}

// PassLogger writes one line per scoring pass.
type PassLogger struct{ w *Writer }

// PassPrefix names pass trace files.
const PassPrefix = "passes"

func NewPassLogger(dir string) *PassLogger {
	return &PassLogger{w: NewWriter(dir, PassPrefix)}
}

func (l *PassLogger) WritePass(p Pass) error { return l.w.Write(p) }
func (l *PassLogger) Close() error           { return l.w.Close() }

// ReadPasses decodes every pass in a compressed trace file. Files appended
// to across restarts hold several zstd frames; the decoder reads them all.
func ReadPasses(path string) ([]Pass, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Pass
	jd := json.NewDecoder(dec)
	for {
		var p Pass
		if err := jd.Decode(&p); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("%s: record %d: %w", path, len(out), err)
		}
		out = append(out, p)
	}
}

// ReadPassDir reads every pass trace file under dir in time order.
func ReadPassDir(dir string) ([]Pass, error) {
	paths, err := Files(dir, PassPrefix)
	if err != nil {
		return nil, err
	}
	var out []Pass
	for _, path := range paths {
		ps, err := ReadPasses(path)
		out = append(out, ps...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
