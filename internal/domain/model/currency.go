package model

// Currency pairs an ISO-4217 code with its conversion rate to INR.
// The set and rates mirror the application's fixed currency table;
// INR is first and is the default for new records.
type Currency struct {
	Code      string
	RateToINR float64
}

// Currencies is the fixed, ordered currency set.
var Currencies = []Currency{
	{"INR", 1},
	{"USD", 86.17},
	{"EUR", 88.3},
	{"GBP", 105.29},
	{"AUD", 53.218},
	{"CAD", 59.727},
	{"CHF", 94.187},
	{"JPY", 0.543},
	{"CNY", 11.713},
	{"MYR", 19.074},
	{"ZAR", 4.541},
	{"NZD", 48.042},
	{"RUB", 0.832},
	{"BRL", 14.061},
	{"MXN", 4.202},
	{"THB", 2.476},
	{"SGD", 62.707},
	{"AED", 23.41},
	{"SAR", 22.899},
	{"KWD", 278.493},
	{"BHD", 221.243},
	{"OMR", 216.515},
}

// DefaultCurrency is the code preselected in the add form.
const DefaultCurrency = "INR"

var currencyRates = func() map[string]float64 {
	m := make(map[string]float64, len(Currencies))
	for _, c := range Currencies {
		m[c.Code] = c.RateToINR
	}
	return m
}()

// ValidCurrency reports whether code is in the fixed currency set.
func ValidCurrency(code string) bool {
	_, ok := currencyRates[code]
	return ok
}

// RateToINR returns the conversion rate for code, or 0 if unknown.
func RateToINR(code string) float64 {
	return currencyRates[code]
}
