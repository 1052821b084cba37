// Package trip defines the taxi trip records the fare model is trained on and predicts for.
package trip

import (
	"encoding/csv"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Column names, in file order.
const (
	VendorID       = "VendorId"
	RateCode       = "RateCode"
	PassengerCount = "PassengerCount"
	TripTime       = "TripTime"
	TripDistance   = "TripDistance"
	PaymentType    = "PaymentType"
	FareAmount     = "FareAmount"
)

// Record is a single taxi trip. FareAmount is the label; it is zero when the record is
// only used for prediction.
type Record struct {
	VendorID       string
	RateCode       string
	PassengerCount float32
	TripTime       float32
	TripDistance   float32
	PaymentType    string
	FareAmount     float32
}

// FarePrediction is the model's score for a Record.
type FarePrediction struct {
	FareAmount float32
}

// Schema maps the seven columns of a trip file, by position.
func Schema() table.Schema {
	return table.Schema{
		{Index: 0, Name: VendorID, Kind: table.Text},
		{Index: 1, Name: RateCode, Kind: table.Text},
		{Index: 2, Name: PassengerCount, Kind: table.Scalar},
		{Index: 3, Name: TripTime, Kind: table.Scalar},
		{Index: 4, Name: TripDistance, Kind: table.Scalar},
		{Index: 5, Name: PaymentType, Kind: table.Text},
		{Index: 6, Name: FareAmount, Kind: table.Scalar},
	}
}

// Load reads a trip file with a header row.
func Load(path string, options ...func(*table.Loader)) (*table.Table, error) {
	return table.Load(path, Schema(), options...)
}

// Table lays records out as a table with the trip schema.
func Table(records ...Record) *table.Table {
	n := len(records)
	var (
		vendor   = make([]string, n)
		rate     = make([]string, n)
		payment  = make([]string, n)
		count    = make([]float64, n)
		time     = make([]float64, n)
		distance = make([]float64, n)
		fare     = make([]float64, n)
	)
	for i, r := range records {
		vendor[i] = r.VendorID
		rate[i] = r.RateCode
		payment[i] = r.PaymentType
		count[i] = float64(r.PassengerCount)
		time[i] = float64(r.TripTime)
		distance[i] = float64(r.TripDistance)
		fare[i] = float64(r.FareAmount)
	}
	t := table.New(n)
	// Every column has n rows, so Add cannot fail.
	_ = t.Add(table.TextColumn(VendorID, vendor))
	_ = t.Add(table.TextColumn(RateCode, rate))
	_ = t.Add(table.ScalarColumn(PassengerCount, count))
	_ = t.Add(table.ScalarColumn(TripTime, time))
	_ = t.Add(table.ScalarColumn(TripDistance, distance))
	_ = t.Add(table.TextColumn(PaymentType, payment))
	_ = t.Add(table.ScalarColumn(FareAmount, fare))
	return t
}

// Parse reads a record from one comma-separated line. The fare column may be omitted, in
// which case FareAmount is zero.
func Parse(line string) (Record, error) {
	const op = "trip.Parse"
	fields, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return Record{}, fault.Wrap(fault.Schema, op, errors.Wrapf(err, "record %q", line))
	}
	if len(fields) != 6 && len(fields) != 7 {
		return Record{}, fault.New(fault.Schema, op, "record %q has %d fields, expected 6 or 7", line, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var numbers [4]float32
	for i, j := range []int{2, 3, 4, 6} {
		if j >= len(fields) {
			break
		}
		v, err := strconv.ParseFloat(fields[j], 32)
		if err != nil {
			return Record{}, fault.New(fault.Schema, op, "record %q: column %d (%s): %q is not a number", line, j, Schema()[j].Name, fields[j])
		}
		numbers[i] = float32(v)
	}
	return Record{
		VendorID:       fields[0],
		RateCode:       fields[1],
		PassengerCount: numbers[0],
		TripTime:       numbers[1],
		TripDistance:   numbers[2],
		PaymentType:    fields[5],
		FareAmount:     numbers[3],
	}, nil
}

// String formats r as a trip file row.
func (r Record) String() string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	return strings.Join([]string{
		r.VendorID, r.RateCode, f(r.PassengerCount), f(r.TripTime), f(r.TripDistance), r.PaymentType, f(r.FareAmount),
	}, ",")
}
