package currency

// Currency is one entry of the static exchange-rate table. Rates are
// expressed against USD and are intentionally fixed, there is no live feed.
type Currency struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Flag   string  `json:"flag"`
	Rate   float64 `json:"rate"`
}

var currencies = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸", Rate: 1},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺", Rate: 0.92},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧", Rate: 0.79},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳", Rate: 83.12},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵", Rate: 149.50},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳", Rate: 7.24},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺", Rate: 1.53},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦", Rate: 1.36},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", Flag: "🇨🇭", Rate: 0.88},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$", Flag: "🇲🇽", Rate: 17.05},
}

// All returns the supported currencies in display order
func All() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// Lookup resolves a currency code; unknown codes default to USD
func Lookup(code string) Currency {
	for _, c := range currencies {
		if c.Code == code {
			return c
		}
	}
	return currencies[0]
}

// Convert converts an amount between two currency codes and returns the
// converted amount plus the effective exchange rate
func Convert(amount float64, from, to string) (float64, float64) {
	src := Lookup(from)
	dst := Lookup(to)
	rate := dst.Rate / src.Rate
	return amount * rate, rate
}
