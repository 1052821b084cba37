package learning

import (
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/trip"
)

// Encoded categorical columns of the taxi fare pipeline.
const (
	VendorIDEncoded    = "VendorIdEncoded"
	RateCodeEncoded    = "RateCodeEncoded"
	PaymentTypeEncoded = "PaymentTypeEncoded"
)

// TaxiFare declares the fare regression pipeline: the fare becomes the label, the categorical
// columns are one-hot encoded, every predictor is concatenated into the feature vector and a
// boosted tree ensemble is trained on it.
func TaxiFare(options ...boost.Option) Estimator {
	return Estimator{}.
		Append(CopyColumns(LabelColumn, trip.FareAmount)).
		Append(OneHotEncoding(VendorIDEncoded, trip.VendorID)).
		Append(OneHotEncoding(RateCodeEncoded, trip.RateCode)).
		Append(OneHotEncoding(PaymentTypeEncoded, trip.PaymentType)).
		Append(Concatenate(FeaturesColumn,
			VendorIDEncoded, RateCodeEncoded, trip.PassengerCount, trip.TripTime, trip.TripDistance, PaymentTypeEncoded)).
		Append(FastTree(options...))
}
