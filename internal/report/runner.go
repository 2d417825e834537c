package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"reviewlens/internal/snowflake"
	"reviewlens/pkg/errors"
)

// ResultSet holds one executed report's rows, ready to render.
type ResultSet struct {
	Report  Report
	Columns []string
	Rows    [][]string
}

// Runner executes catalog reports through the warehouse service.
type Runner struct {
	service *snowflake.Service
	table   string
	limit   int // row cap per rendered table, 0 means unlimited
}

// NewRunner creates a report runner for the given qualified landing table.
func NewRunner(service *snowflake.Service, table string, limit int) *Runner {
	return &Runner{service: service, table: table, limit: limit}
}

// Run executes a single report and collects its result rows.
func (r *Runner) Run(ctx context.Context, rep Report) (*ResultSet, error) {
	rows, err := r.service.Query(ctx, rep.SQL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLExecution, "Report query failed").
			WithContext("report", rep.Name)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLExecution, "Failed to read report columns").
			WithContext("report", rep.Name)
	}

	result := &ResultSet{Report: rep, Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSQLExecution, "Failed to scan report row").
				WithContext("report", rep.Name)
		}

		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, record)

		if r.limit > 0 && len(result.Rows) >= r.limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLExecution, "Report row iteration failed").
			WithContext("report", rep.Name)
	}

	return result, nil
}

// RunAll executes every catalog report in order, rendering each to out as
// it completes.
func (r *Runner) RunAll(ctx context.Context, out io.Writer) error {
	for _, rep := range Catalog(r.table) {
		result, err := r.Run(ctx, rep)
		if err != nil {
			return err
		}
		Render(out, result)
	}
	return nil
}

// Render writes one result set as a bordered table with a colored header.
func Render(out io.Writer, result *ResultSet) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprintf(out, "\n%s", result.Report.Name)
	fmt.Fprintf(out, "  %s\n", result.Report.Description)

	if len(result.Rows) == 0 {
		fmt.Fprintln(out, "  (no rows)")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(result.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.AppendBulk(result.Rows)
	table.Render()

	fmt.Fprintf(out, "%d row(s)\n", len(result.Rows))
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case sql.RawBytes:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
