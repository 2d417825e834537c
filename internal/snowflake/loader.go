package snowflake

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"reviewlens/pkg/errors"
)

// LoadOptions configures staging and bulk loading of chunk files
type LoadOptions struct {
	Database   string
	Schema     string
	Stage      string
	Table      string
	FileFormat string

	Parallel       int  // PUT upload threads per file
	AutoCompress   bool // gzip during PUT
	PurgeAfterLoad bool // remove staged files once copied
}

// LoadResult summarizes a bulk load run
type LoadResult struct {
	FilesStaged int
	RowsLoaded  int64
	Duration    time.Duration
}

// Loader stages local chunk files and bulk-loads them with COPY INTO. The
// warehouse ingests staged files in parallel, one worker per file, which is
// why the source gets partitioned in the first place.
type Loader struct {
	service *Service
	options LoadOptions
}

// NewLoader creates a Loader bound to a connected service
func NewLoader(service *Service, options LoadOptions) *Loader {
	if options.Parallel <= 0 {
		options.Parallel = 4
	}
	return &Loader{service: service, options: options}
}

func (l *Loader) qualified(name string) string {
	return fmt.Sprintf("%s.%s.%s", l.options.Database, l.options.Schema, name)
}

// EnsureObjects creates the file format, stage, and landing table if they do
// not exist yet. Idempotent.
func (l *Loader) EnsureObjects(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf("CREATE FILE FORMAT IF NOT EXISTS %s TYPE = 'JSON' STRIP_OUTER_ARRAY = FALSE",
			l.qualified(l.options.FileFormat)),
		fmt.Sprintf("CREATE STAGE IF NOT EXISTS %s FILE_FORMAT = %s",
			l.qualified(l.options.Stage), l.qualified(l.options.FileFormat)),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (RAW VARIANT, LOADED_AT TIMESTAMP_NTZ DEFAULT CURRENT_TIMESTAMP())",
			l.qualified(l.options.Table)),
	}

	for _, stmt := range statements {
		if err := l.service.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, errors.ErrCodeStagingFailed, "Failed to create warehouse objects")
		}
	}
	return nil
}

// StageFile uploads one local file to the stage with PUT
func (l *Loader) StageFile(ctx context.Context, path string) error {
	putSQL := fmt.Sprintf("PUT file://%s @%s AUTO_COMPRESS=%v PARALLEL=%d",
		path,
		l.qualified(l.options.Stage),
		l.options.AutoCompress,
		l.options.Parallel,
	)

	if err := l.service.Exec(ctx, putSQL); err != nil {
		return errors.Wrap(err, errors.ErrCodeStagingFailed, "Failed to PUT file").
			WithContext("file", path).
			WithContext("stage", l.options.Stage)
	}
	return nil
}

// CopyInto bulk-loads all staged files into the landing table and returns
// the number of rows loaded across files.
func (l *Loader) CopyInto(ctx context.Context) (int64, error) {
	copySQL := fmt.Sprintf(`COPY INTO %s (RAW)
		FROM @%s
		FILE_FORMAT = (FORMAT_NAME = '%s')
		ON_ERROR = 'ABORT_STATEMENT'
		PURGE = %v`,
		l.qualified(l.options.Table),
		l.qualified(l.options.Stage),
		l.qualified(l.options.FileFormat),
		l.options.PurgeAfterLoad,
	)

	rows, err := l.service.Query(ctx, copySQL)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeCopyFailed, "Failed to execute COPY INTO").
			WithContext("table", l.options.Table)
	}
	defer rows.Close()

	// COPY INTO reports one row per ingested file; rows_loaded is the count
	// we care about. Column order varies across versions, so match by name.
	cols, err := rows.Columns()
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeCopyFailed, "Failed to read COPY result columns")
	}

	loadedIdx := -1
	for i, col := range cols {
		if col == "rows_loaded" {
			loadedIdx = i
			break
		}
	}

	var total int64
	for rows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return 0, errors.Wrap(err, errors.ErrCodeCopyFailed, "Failed to scan COPY result row")
		}
		if loadedIdx >= 0 {
			total += toInt64(values[loadedIdx])
		}
	}

	return total, rows.Err()
}

// LoadDirectory stages every chunk file matching pattern under dir, then
// issues a single COPY INTO so the warehouse loads them in parallel.
// progress, when non-nil, is called after each file is staged.
func (l *Loader) LoadDirectory(ctx context.Context, dir, pattern string, progress func(current, total int, file string)) (*LoadResult, error) {
	start := time.Now()

	if pattern == "" {
		pattern = "*.json"
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.FileError("Failed to list chunk files", dir, err)
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound, "No chunk files found").
			WithContext("dir", dir).
			WithContext("pattern", pattern).
			WithSuggestions("Run 'reviewlens split' first")
	}
	sort.Strings(files)

	if err := l.EnsureObjects(ctx); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for i, file := range files {
		if err := l.StageFile(ctx, file); err != nil {
			return nil, err
		}
		result.FilesStaged++
		if progress != nil {
			progress(i+1, len(files), file)
		}
	}

	loaded, err := l.CopyInto(ctx)
	if err != nil {
		return nil, err
	}
	result.RowsLoaded = loaded
	result.Duration = time.Since(start)

	return result, nil
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		var parsed int64
		fmt.Sscanf(string(n), "%d", &parsed)
		return parsed
	case string:
		var parsed int64
		fmt.Sscanf(n, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
