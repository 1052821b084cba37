package trip_test

import (
	"bytes"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"github.com/ProfessorX0227/fare/trip"
	"github.com/ProfessorX0227/fare/trip/triptest"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	r, err := trip.Parse("VTS,1,2,1130,4.13,CRD")
	if err != nil {
		t.Fatal(err)
	}
	if r != triptest.Probe {
		t.Errorf("expected %+v, got %+v", triptest.Probe, r)
	}

	r, err = trip.Parse(" VTS , 1 ,1,1140,3.75,CRD,15.5")
	if err != nil {
		t.Fatal(err)
	}
	if r != triptest.Fixture {
		t.Errorf("expected %+v, got %+v", triptest.Fixture, r)
	}
}

func TestParseErrors(t *testing.T) {
	for _, line := range []string{
		"VTS,1,2",
		"VTS,1,two,1130,4.13,CRD",
		"VTS,1,2,1130,4.13,CRD,x",
	} {
		if _, err := trip.Parse(line); !fault.Is(err, fault.Schema) {
			t.Errorf("%q: expected schema error, got %v", line, err)
		}
	}
}

func TestRecordStringRoundTrip(t *testing.T) {
	r, err := trip.Parse(triptest.Fixture.String())
	if err != nil {
		t.Fatal(err)
	}
	if r != triptest.Fixture {
		t.Errorf("expected %+v, got %+v", triptest.Fixture, r)
	}
}

func TestTable(t *testing.T) {
	tbl := trip.Table(triptest.Fixture, triptest.Probe)
	if err := trip.Schema().Conforms(tbl); err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	fare, _ := tbl.Column(trip.FareAmount)
	if fare.Scalar[0] != 15.5 || fare.Scalar[1] != 0 {
		t.Errorf("unexpected fares %v", fare.Scalar)
	}
}

func TestLoadGeneratedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	records := triptest.Records(50, 1)
	if err := triptest.WriteFile(path, records); err != nil {
		t.Fatal(err)
	}
	tbl, err := trip.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 50 {
		t.Fatalf("expected 50 rows, got %d", tbl.Len())
	}
	vendor, _ := tbl.Column(trip.VendorID)
	if vendor.Text[0] != "VTS" {
		t.Errorf("expected the fixture first, got %q", vendor.Text[0])
	}
}

func TestLoadMissingColumn(t *testing.T) {
	data := "a,b,c,d,e,f\nVTS,1,1,1140,3.75,CRD\n"
	if _, err := table.Read(bytes.NewBufferString(data), trip.Schema()); !fault.Is(err, fault.Schema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}
