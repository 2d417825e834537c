package snowflake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewlens/pkg/errors"
)

func testLoadOptions() LoadOptions {
	return LoadOptions{
		Database:     "REVIEWS_DB",
		Schema:       "PUBLIC",
		Stage:        "REVIEW_STAGE",
		Table:        "RAW_REVIEWS",
		FileFormat:   "NDJSON_FORMAT",
		Parallel:     4,
		AutoCompress: true,
	}
}

func copyResultRows(loaded ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"file", "status", "rows_parsed", "rows_loaded"})
	for i, n := range loaded {
		rows.AddRow(fmt.Sprintf("reviews_%04d.json.gz", i+1), "LOADED", n, n)
	}
	return rows
}

func TestNewLoaderDefaultsParallel(t *testing.T) {
	opts := testLoadOptions()
	opts.Parallel = 0

	loader := NewLoader(NewService(testConfig()), opts)
	assert.Equal(t, 4, loader.options.Parallel)
}

func TestEnsureObjects(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectExec("CREATE FILE FORMAT IF NOT EXISTS REVIEWS_DB.PUBLIC.NDJSON_FORMAT").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE STAGE IF NOT EXISTS REVIEWS_DB.PUBLIC.REVIEW_STAGE").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS REVIEWS_DB.PUBLIC.RAW_REVIEWS").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, loader.EnsureObjects(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureObjectsFailure(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectExec("CREATE FILE FORMAT").WillReturnError(assert.AnError)

	err := loader.EnsureObjects(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStagingFailed, errors.GetErrorCode(err))
}

func TestStageFile(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectExec(`PUT file:///data/chunks/reviews_0001.json @REVIEWS_DB.PUBLIC.REVIEW_STAGE AUTO_COMPRESS=true PARALLEL=4`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, loader.StageFile(context.Background(), "/data/chunks/reviews_0001.json"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageFileFailure(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectExec("PUT file://").WillReturnError(assert.AnError)

	err := loader.StageFile(context.Background(), "/data/chunks/reviews_0001.json")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStagingFailed, errors.GetErrorCode(err))
}

func TestCopyInto(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectQuery("COPY INTO REVIEWS_DB.PUBLIC.RAW_REVIEWS").
		WillReturnRows(copyResultRows(1000, 950, 1050))

	loaded, err := loader.CopyInto(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3000), loaded)
}

func TestCopyIntoFailure(t *testing.T) {
	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectQuery("COPY INTO").WillReturnError(assert.AnError)

	_, err := loader.CopyInto(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCopyFailed, errors.GetErrorCode(err))
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"reviews_0001.json", "reviews_0002.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{"a":1}`+"\n"), 0644))
	}

	service, mock := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	mock.ExpectExec("CREATE FILE FORMAT IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE STAGE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PUT file://.*reviews_0001.json").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("PUT file://.*reviews_0002.json").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("COPY INTO").WillReturnRows(copyResultRows(500, 500))

	var staged []string
	result, err := loader.LoadDirectory(context.Background(), dir, "*.json", func(current, total int, file string) {
		staged = append(staged, filepath.Base(file))
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesStaged)
	assert.Equal(t, int64(1000), result.RowsLoaded)
	assert.Equal(t, []string{"reviews_0001.json", "reviews_0002.json"}, staged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDirectoryNoFiles(t *testing.T) {
	service, _ := mockService(t)
	loader := NewLoader(service, testLoadOptions())

	_, err := loader.LoadDirectory(context.Background(), t.TempDir(), "*.json", nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.GetErrorCode(err))
}
