// Package partition splits a large newline-delimited JSON file into smaller
// chunk files so a warehouse can bulk-load them in parallel, one worker per
// file. Records are never split across files and never inspected: the
// partitioner only needs line boundaries, so malformed JSON bodies pass
// through untouched.
//
// Splitting streams the source a line at a time; peak memory is bounded by
// the longest single record, not by the source size. On failure, chunk files
// already flushed to disk are left in place; callers re-running after an
// error should clear the output directory first.
package partition

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"reviewlens/internal/common"
	"reviewlens/pkg/errors"
)

// Options configures a split run. Exactly one sizing mode applies:
// LinesPerChunk > 0 selects the single-pass mode with a fixed number of
// records per file (last file absorbs the remainder); otherwise ChunkCount
// must be positive and the source is divided into that many evenly sized
// files, the first TotalLines mod ChunkCount of them carrying one extra
// record.
type Options struct {
	SourcePath    string
	OutputDir     string
	Prefix        string
	ChunkCount    int
	LinesPerChunk int
}

// ChunkInfo describes one written chunk file.
type ChunkInfo struct {
	Path  string
	Index int // 1-based, matches the file name suffix
	Lines int
	Bytes int64
}

// Result summarizes a completed split.
type Result struct {
	Chunks     []ChunkInfo
	TotalLines int
	TotalBytes int64
	Duration   time.Duration
}

// Split partitions the source file per opts. The output directory and chunk
// files are created lazily when the first record arrives, so an empty source
// produces no files and no directory, and a source with fewer records than
// ChunkCount produces one file per record.
// Concatenating the chunk files in index order reproduces the source byte
// for byte.
func Split(opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	start := time.Now()

	// Single-pass mode: fixed quota for every chunk.
	quota := func(index int) int { return opts.LinesPerChunk }

	if opts.LinesPerChunk == 0 {
		// Even-distribution mode needs the total up front. Counting is a
		// streaming pass too; it costs a second read of the source, not
		// memory.
		total, err := countLines(opts.SourcePath)
		if err != nil {
			return nil, err
		}
		if total == 0 {
			return &Result{Duration: time.Since(start)}, nil
		}

		base := total / opts.ChunkCount
		remainder := total % opts.ChunkCount
		quota = func(index int) int {
			if index < remainder {
				return base + 1
			}
			return base
		}
	}

	return writeChunks(opts, quota, start)
}

func validate(opts Options) error {
	if opts.SourcePath == "" {
		return errors.ValidationError("source", opts.SourcePath, "path is required")
	}
	if opts.OutputDir == "" {
		return errors.ValidationError("output-dir", opts.OutputDir, "directory is required")
	}
	if opts.Prefix == "" {
		return errors.ValidationError("prefix", opts.Prefix, "prefix is required")
	}
	// The prefix becomes part of the chunk file name; path components in it
	// could place files outside the output directory.
	if _, err := common.ValidatePath(filepath.Join(opts.OutputDir, opts.Prefix+"_0001.json"), opts.OutputDir); err != nil {
		return errors.ValidationError("prefix", opts.Prefix, "must not escape the output directory")
	}
	if opts.LinesPerChunk < 0 {
		return errors.ValidationError("lines-per-chunk", opts.LinesPerChunk, "must be positive")
	}
	if opts.LinesPerChunk == 0 && opts.ChunkCount <= 0 {
		return errors.ValidationError("chunks", opts.ChunkCount, "must be a positive integer")
	}
	return nil
}

// writeChunks streams the source once, writing records to consecutive chunk
// files. quota returns the record budget for the chunk at the given 0-based
// index; the current chunk is closed as soon as its budget is met.
func writeChunks(opts Options, quota func(index int) int, start time.Time) (*Result, error) {
	src, err := openSource(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	cw := newChunkWriter(opts.OutputDir, opts.Prefix)
	defer cw.abort()

	result := &Result{}
	reader := bufio.NewReaderSize(src, 1<<20)

	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if err := cw.write(line); err != nil {
				return nil, err
			}
			result.TotalLines++
			result.TotalBytes += int64(len(line))
			if cw.lines == quota(len(cw.chunks)) {
				if err := cw.closeCurrent(); err != nil {
					return nil, err
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.FileError("Failed to read source file", opts.SourcePath, readErr)
		}
	}

	// Last chunk absorbs the remainder in single-pass mode.
	if err := cw.closeCurrent(); err != nil {
		return nil, err
	}

	result.Chunks = cw.chunks
	result.Duration = time.Since(start)
	return result, nil
}

// countLines streams the source once and counts records. A final line
// without a trailing newline still counts as a record.
func countLines(path string) (int, error) {
	src, err := openSource(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	reader := bufio.NewReaderSize(src, 1<<20)
	count := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			count++
		}
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return 0, errors.FileError("Failed to read source file", path, err)
		}
	}
}

func openSource(path string) (*os.File, error) {
	src, err := os.Open(path) // #nosec G304 - path comes from CLI input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "Source file does not exist").
				WithContext("path", path).
				WithSuggestions("Check the source file path")
		}
		return nil, errors.FileError("Failed to open source file", path, err)
	}
	return src, nil
}

// chunkWriter manages the current output file. Files are created lazily on
// the first record destined for them and closed deterministically, so no
// chunk file is ever created empty and no descriptor outlives an error.
type chunkWriter struct {
	dir    string
	prefix string

	file   *os.File
	writer *bufio.Writer
	lines  int
	bytes  int64

	chunks []ChunkInfo
}

func newChunkWriter(dir, prefix string) *chunkWriter {
	return &chunkWriter{dir: dir, prefix: prefix}
}

func (cw *chunkWriter) write(line string) error {
	if cw.file == nil {
		if err := os.MkdirAll(cw.dir, 0755); err != nil {
			return errors.FileError("Failed to create output directory", cw.dir, err)
		}
		path := filepath.Join(cw.dir, fmt.Sprintf("%s_%04d.json", cw.prefix, len(cw.chunks)+1))
		f, err := os.Create(path) // #nosec G304 - path built from validated components
		if err != nil {
			return errors.FileError("Failed to create chunk file", path, err)
		}
		cw.file = f
		cw.writer = bufio.NewWriterSize(f, 1<<20)
	}

	n, err := cw.writer.WriteString(line)
	if err != nil {
		return errors.FileError("Failed to write chunk file", cw.file.Name(), err)
	}
	cw.lines++
	cw.bytes += int64(n)
	return nil
}

// closeCurrent flushes and closes the open chunk file, if any, and records
// its stats. Safe to call when no file is open.
func (cw *chunkWriter) closeCurrent() error {
	if cw.file == nil {
		return nil
	}

	name := cw.file.Name()
	if err := cw.writer.Flush(); err != nil {
		cw.file.Close()
		cw.file = nil
		return errors.FileError("Failed to flush chunk file", name, err)
	}
	if err := cw.file.Close(); err != nil {
		cw.file = nil
		return errors.FileError("Failed to close chunk file", name, err)
	}

	cw.chunks = append(cw.chunks, ChunkInfo{
		Path:  name,
		Index: len(cw.chunks) + 1,
		Lines: cw.lines,
		Bytes: cw.bytes,
	})
	cw.file = nil
	cw.writer = nil
	cw.lines = 0
	cw.bytes = 0
	return nil
}

// abort closes the open file handle without recording it. Used on error
// paths; the partially written file stays on disk.
func (cw *chunkWriter) abort() {
	if cw.file != nil {
		cw.file.Close()
		cw.file = nil
	}
}
