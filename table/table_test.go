package table_test

import (
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var schema = table.Schema{
	{Index: 0, Name: "Vendor", Kind: table.Text},
	{Index: 1, Name: "Distance", Kind: table.Scalar},
	{Index: 2, Name: "Fare", Kind: table.Scalar},
}

func TestRead(t *testing.T) {
	data := "vendor,distance,fare\nVTS,3.75,15.5\nCMT, 1.2 ,6\n"
	tbl, err := table.Read(strings.NewReader(data), schema)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	vendor, ok := tbl.Column("Vendor")
	if !ok || vendor.Text[1] != "CMT" {
		t.Errorf("unexpected vendor column %+v", vendor)
	}
	dist, _ := tbl.Column("Distance")
	if dist.Scalar[1] != 1.2 {
		t.Errorf("expected trimmed numeric value 1.2, got %v", dist.Scalar[1])
	}
	if got := strings.Join(tbl.Names(), ","); got != "Vendor,Distance,Fare" {
		t.Errorf("unexpected column order %s", got)
	}
}

func TestReadPositionalMapping(t *testing.T) {
	// The header names are deliberately wrong; only positions matter.
	data := "a,b,c\nVTS,2,9\n"
	tbl, err := table.Read(strings.NewReader(data), schema)
	if err != nil {
		t.Fatal(err)
	}
	fare, _ := tbl.Column("Fare")
	if fare.Scalar[0] != 9 {
		t.Errorf("expected fare 9, got %v", fare.Scalar[0])
	}
}

func TestReadOptions(t *testing.T) {
	data := "VTS;2;9\nCMT;4;12\n"
	tbl, err := table.Read(strings.NewReader(data), schema, table.Separator(';'), table.HasHeader(false))
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
}

func TestReadSkipsByteOrderMark(t *testing.T) {
	for _, data := range []string{"\ufeffVTS,2,9\n", "\ufeffh,h,h\nVTS,2,9\n"} {
		tbl, err := table.Read(strings.NewReader(data), schema, table.HasHeader(strings.Count(data, "\n") == 2))
		if err != nil {
			t.Fatal(err)
		}
		vendor, _ := tbl.Column("Vendor")
		if tbl.Len() != 1 || vendor.Text[0] != "VTS" {
			t.Errorf("%q: unexpected vendors %q", data, vendor.Text)
		}
	}
}

func TestReadEmptyNumericIsMissing(t *testing.T) {
	tbl, err := table.Read(strings.NewReader("h,h,h\nVTS,,9\n"), schema)
	if err != nil {
		t.Fatal(err)
	}
	dist, _ := tbl.Column("Distance")
	if !math.IsNaN(dist.Scalar[0]) {
		t.Errorf("expected NaN, got %v", dist.Scalar[0])
	}
}

func TestReadSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing column", "h,h,h\nVTS,2\n"},
		{"extra column", "h,h,h\nVTS,2,3,4\n"},
		{"not a number", "h,h,h\nVTS,two,3\n"},
		{"bare quote", "h,h,h\nV\"TS,2,3\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tbl, err := table.Read(strings.NewReader(test.data), schema)
			if !fault.Is(err, fault.Schema) {
				t.Fatalf("expected schema error, got %v", err)
			}
			if tbl != nil {
				t.Error("no table may be returned on error")
			}
		})
	}
}

func TestReadErrorNamesLine(t *testing.T) {
	_, err := table.Read(strings.NewReader("h,h,h\nVTS,2,3\nVTS,2,x\n"), schema)
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected error naming line 3, got %v", err)
	}
}

func TestReadInvalidSchema(t *testing.T) {
	bad := table.Schema{
		{Index: 0, Name: "A", Kind: table.Text},
		{Index: 1, Name: "A", Kind: table.Scalar},
	}
	if _, err := table.Read(strings.NewReader("x,1\n"), bad); !fault.Is(err, fault.Schema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.csv")
	if err := os.WriteFile(path, []byte("h,h,h\nVTS,1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tbl, err := table.Load(path, schema)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 1 {
		t.Errorf("expected 1 row, got %d", tbl.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := table.Load(filepath.Join(t.TempDir(), "nope.csv"), schema)
	if !fault.Is(err, fault.IO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestTableAddReplaceAndClone(t *testing.T) {
	tbl := table.New(2)
	if err := tbl.Add(table.ScalarColumn("x", []float64{1, 2})); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Add(table.ScalarColumn("bad", []float64{1})); err == nil {
		t.Error("expected row count mismatch error")
	}

	clone := tbl.Clone()
	if err := clone.Add(table.ScalarColumn("x", []float64{3, 4})); err != nil {
		t.Fatal(err)
	}
	if err := clone.Add(table.TextColumn("y", []string{"a", "b"})); err != nil {
		t.Fatal(err)
	}
	orig, _ := tbl.Column("x")
	if orig.Scalar[0] != 1 {
		t.Error("clone modified the original table")
	}
	if _, ok := tbl.Column("y"); ok {
		t.Error("clone added a column to the original table")
	}
	if got := strings.Join(clone.Names(), ","); got != "x,y" {
		t.Errorf("replacement must keep position, got %s", got)
	}
}

func TestTableSlice(t *testing.T) {
	tbl := table.New(3)
	_ = tbl.Add(table.TextColumn("c", []string{"a", "b", "c"}))
	_ = tbl.Add(table.VectorColumn("v", 2, [][]float64{{1, 0}, {0, 1}, {1, 1}}))
	s, err := tbl.Slice(2, 0)
	if err != nil {
		t.Fatal(err)
	}
	c, _ := s.Column("c")
	v, _ := s.Column("v")
	if c.Text[0] != "c" || c.Text[1] != "a" || v.Vector[0][1] != 1 {
		t.Errorf("unexpected slice %v %v", c.Text, v.Vector)
	}
	if _, err := tbl.Slice(3); err == nil {
		t.Error("expected out of range error")
	}
}

func TestSchemaConforms(t *testing.T) {
	tbl := table.New(1)
	_ = tbl.Add(table.TextColumn("Vendor", []string{"VTS"}))
	_ = tbl.Add(table.TextColumn("Distance", []string{"far"}))
	err := schema.Conforms(tbl)
	if err == nil {
		t.Fatal("expected conformance error")
	}
	if !strings.Contains(err.Error(), `column "Distance" is text, expected scalar`) ||
		!strings.Contains(err.Error(), `missing column "Fare"`) {
		t.Errorf("unexpected message %q", err.Error())
	}
}
