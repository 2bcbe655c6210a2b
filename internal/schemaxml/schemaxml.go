// Package schemaxml loads a table's column schema from an XML fixture file,
// the format used by the test suite to describe synthetic tables without
// hand-writing Go literals for every case.
//
// Fixture shape:
//
//	<table name="events">
//	  <column name="id" type="dummy"/>
//	  <column name="severity" type="int64" sorted="true"/>
//	  <column name="latency" type="float64" nullable="true"/>
//	  <column name="label" type="string"/>
//	</table>
package schemaxml

import (
	"fmt"
	"io"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/rowspace/colfilter/core/errors"
	"github.com/rowspace/colfilter/internal/table"
)

// ColumnSpec is one <column> element's parsed attributes.
type ColumnSpec struct {
	Name       string
	Type       table.ColumnType
	IsSorted   bool
	IsDense    bool
	IsNullable bool
}

// TableSpec is a parsed <table> element: its name and column specs, in
// document order.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
}

// Find returns the column spec named name, if the table has one.
func (t *TableSpec) Find(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// Load parses an XML table-schema fixture from r.
func Load(r io.Reader) (*TableSpec, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: "parsing document", Err: err}
	}

	if _, err := xpath.Compile("//table/column"); err != nil {
		return nil, &errors.ParseError{Format: "XML", Message: "invalid xpath", Err: err}
	}

	tableNode := xmlquery.FindOne(doc, "//table")
	if tableNode == nil {
		return nil, &errors.ParseError{Format: "XML", Message: "no <table> element found"}
	}

	spec := &TableSpec{Name: tableNode.SelectAttr("name")}

	for _, col := range xmlquery.Find(doc, "//table/column") {
		typ, err := parseColumnType(col.SelectAttr("type"))
		if err != nil {
			return nil, &errors.ParseError{Format: "XML", Message: fmt.Sprintf("column %q", col.SelectAttr("name")), Err: err}
		}
		spec.Columns = append(spec.Columns, ColumnSpec{
			Name:       col.SelectAttr("name"),
			Type:       typ,
			IsSorted:   parseBoolAttr(col, "sorted"),
			IsDense:    parseBoolAttr(col, "dense"),
			IsNullable: parseBoolAttr(col, "nullable"),
		})
	}

	if len(spec.Columns) == 0 {
		return nil, &errors.ParseError{Format: "XML", Message: fmt.Sprintf("table %q has no columns", spec.Name)}
	}

	return spec, nil
}

func parseColumnType(s string) (table.ColumnType, error) {
	switch s {
	case "int64":
		return table.ColumnTypeInt64, nil
	case "uint64":
		return table.ColumnTypeUint64, nil
	case "float64":
		return table.ColumnTypeFloat64, nil
	case "string":
		return table.ColumnTypeString, nil
	case "dummy":
		return table.ColumnTypeDummy, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", s)
	}
}

func parseBoolAttr(n *xmlquery.Node, name string) bool {
	v := n.SelectAttr(name)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
