// Command colfilter is a small demo CLI for the columnar filter executor: it
// loads a table schema and XZ-compressed int64 fixture columns, parses a
// predicate expression, and reports which rows survive.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/rowspace/colfilter/core/colfilter/bridge"
	"github.com/rowspace/colfilter/core/colfilter/constraint"
	"github.com/rowspace/colfilter/core/colfilter/filter"
	"github.com/rowspace/colfilter/core/colfilter/rowmap"
	"github.com/rowspace/colfilter/internal/debugstream"
	"github.com/rowspace/colfilter/internal/fixtures"
	"github.com/rowspace/colfilter/internal/logging"
	"github.com/rowspace/colfilter/internal/memo"
	"github.com/rowspace/colfilter/internal/predicate"
	"github.com/rowspace/colfilter/internal/schemaxml"
	"github.com/rowspace/colfilter/internal/table"
)

const version = "0.1.0"

// CLI defines the command-line interface for colfilter.
var CLI struct {
	Query   QueryCmd   `cmd:"" help:"Filter a fixture column against a predicate"`
	Serve   ServeCmd   `cmd:"" help:"Serve a debug trace WebSocket while running queries"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// QueryCmd is the query command: colfilter query --schema t.xml --fixture col.xz --column age --where "age >= 18"
type QueryCmd struct {
	Schema  string `required:"" help:"Path to table schema XML" type:"existingfile"`
	Fixture string `required:"" help:"Path to an xz-compressed int64 fixture file" type:"existingfile"`
	Column  string `required:"" help:"Column name within the schema to filter"`
	Where   string `required:"" help:"Predicate expression, e.g. \"age >= 18\" or \"age IS NULL\""`
	Cache   bool   `help:"Memoize the result keyed by the predicate's content hash" default:"true"`
}

func (c *QueryCmd) Run() error {
	ctx := context.Background()

	schemaFile, err := os.Open(c.Schema)
	if err != nil {
		return fmt.Errorf("colfilter: opening schema: %w", err)
	}
	defer schemaFile.Close()

	spec, err := schemaxml.Load(schemaFile)
	if err != nil {
		return fmt.Errorf("colfilter: loading schema: %w", err)
	}

	colSpec, ok := spec.Find(c.Column)
	if !ok {
		return fmt.Errorf("colfilter: schema %q has no column %q", spec.Name, c.Column)
	}
	if colSpec.Type != table.ColumnTypeInt64 {
		return fmt.Errorf("colfilter: this demo only loads int64 fixtures, column %q is %s", c.Column, colSpec.Type)
	}

	values, err := fixtures.LoadInt64Column(c.Fixture)
	if err != nil {
		return fmt.Errorf("colfilter: loading fixture: %w", err)
	}

	colName, colConstraint, err := predicate.ParseAs(c.Where, constraint.KindInt64)
	if err != nil {
		return fmt.Errorf("colfilter: parsing predicate: %w", err)
	}
	if colName != c.Column {
		return fmt.Errorf("colfilter: predicate refers to column %q, --column is %q", colName, c.Column)
	}

	col := table.New(colSpec.Name, table.ColumnTypeInt64, len(values))
	col.Int64Values = values
	col.IsSorted = colSpec.IsSorted
	col.IsDense = colSpec.IsDense
	col.IsNullable = colSpec.IsNullable

	var cache *memo.TTLCache[string, []int]
	var cacheKey string
	if c.Cache {
		cache = memo.New[string, []int](5 * time.Minute)
		cacheKey = memo.Key(c.Column, colConstraint)
		if rows, ok := cache.Get(cacheKey); ok {
			printResult(rows, len(values))
			fmt.Println("(served from cache)")
			return nil
		}
	}

	r := rowmap.NewRange(col.Len(), 0, col.Len())

	eligible, reason := bridge.Decide(col, colConstraint, false)
	if eligible {
		bound := bridge.Bind(col)
		filter.NewExecutor().FilterColumn(ctx, colConstraint, bound, r)
	} else {
		logging.InfoContext(ctx, "routing to legacy filter", "column", c.Column, "reason", reason.String())
		legacy, lerr := bridge.NewLegacyFilter()
		if lerr != nil {
			return fmt.Errorf("colfilter: opening legacy filter: %w", lerr)
		}
		defer legacy.Close()
		if lerr := legacy.FilterInto(ctx, col, colConstraint, r); lerr != nil {
			return fmt.Errorf("colfilter: legacy filter: %w", lerr)
		}
	}

	var rows []int
	r.IterateRows(func(row int) bool {
		rows = append(rows, row)
		return true
	})

	if cache != nil {
		cache.Set(cacheKey, rows)
	}

	printResult(rows, len(values))
	return nil
}

func printResult(rows []int, total int) {
	fmt.Printf("%s of %s rows matched\n", humanize.Comma(int64(len(rows))), humanize.Comma(int64(total)))
	const preview = 20
	for i, row := range rows {
		if i >= preview {
			fmt.Printf("... and %s more\n", humanize.Comma(int64(len(rows)-preview)))
			break
		}
		fmt.Println(row)
	}
}

// ServeCmd starts a debug trace WebSocket server at /debug/stream. It does
// not run queries or broadcast any events itself.
type ServeCmd struct {
	Addr string `help:"Address to listen on" default:":8089"`
}

func (c *ServeCmd) Run() error {
	hub := debugstream.NewHub()
	go hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/stream", func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(w, r); err != nil {
			logging.Error("debugstream: upgrade failed", "error", err)
		}
	})

	fmt.Printf("colfilter debug stream listening on %s/debug/stream\n", c.Addr)
	return http.ListenAndServe(c.Addr, mux)
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("colfilter version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("colfilter"),
		kong.Description("Columnar filter executor demo CLI"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
