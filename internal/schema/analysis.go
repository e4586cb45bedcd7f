package schema

import (
	"bytes"
	"encoding/json"
	"strings"

	apperrors "go-coin-analyzer/internal/errors"
)

// CoinAnalysis is the canonical analysis record returned to clients. It is the
// superset shape: coin/non-coin aware and value-estimation aware. Optional
// fields are pointers so absence survives serialization instead of collapsing
// to "" or 0.
type CoinAnalysis struct {
	IsCoin              bool     `json:"isCoin"`
	ActualObject        *string  `json:"actualObject,omitempty"`
	CoinType            *string  `json:"coinType,omitempty"`
	Country             *string  `json:"country,omitempty"`
	CountryFlag         *string  `json:"countryFlag,omitempty"`
	Denomination        *string  `json:"denomination,omitempty"`
	Year                *string  `json:"year,omitempty"`
	Confidence          *float64 `json:"confidence,omitempty"`
	Material            *string  `json:"material,omitempty"`
	Value               *float64 `json:"value,omitempty"`
	Currency            *string  `json:"currency,omitempty"`
	Condition           *string  `json:"condition,omitempty"`
	Rarity              *string  `json:"rarity,omitempty"`
	EstimatedValue      *float64 `json:"estimatedValue,omitempty"`
	EstimatedValueRange *string  `json:"estimatedValueRange,omitempty"`
	ValueFactors        []string `json:"valueFactors,omitempty"`
}

// rawAnalysis mirrors CoinAnalysis but leaves year untyped, since providers
// emit it as either a JSON string or a JSON number.
type rawAnalysis struct {
	IsCoin              *bool           `json:"isCoin"`
	ActualObject        *string         `json:"actualObject"`
	CoinType            *string         `json:"coinType"`
	Country             *string         `json:"country"`
	CountryFlag         *string         `json:"countryFlag"`
	Denomination        *string         `json:"denomination"`
	Year                json.RawMessage `json:"year"`
	Confidence          *float64        `json:"confidence"`
	Material            *string         `json:"material"`
	Value               *float64        `json:"value"`
	Currency            *string         `json:"currency"`
	Condition           *string         `json:"condition"`
	Rarity              *string         `json:"rarity"`
	EstimatedValue      *float64        `json:"estimatedValue"`
	EstimatedValueRange *string         `json:"estimatedValueRange"`
	ValueFactors        []string        `json:"valueFactors"`
}

// ParseAnalysis parses raw provider text into the canonical CoinAnalysis.
// Invalid JSON yields a malformed_response error; JSON that parses but does
// not fit the shape yields a schema_violation carrying the offending field.
func ParseAnalysis(raw string) (*CoinAnalysis, error) {
	trimmed := strings.TrimSpace(raw)
	if !json.Valid([]byte(trimmed)) {
		return nil, apperrors.NewMalformedResponseError("provider returned invalid JSON", nil)
	}

	var r rawAnalysis
	if err := json.Unmarshal([]byte(trimmed), &r); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			field := typeErr.Field
			if field == "" {
				field = "$"
			}
			return nil, apperrors.NewSchemaViolationError(field,
				"unexpected type "+typeErr.Value, err)
		}
		return nil, apperrors.NewMalformedResponseError("provider returned invalid JSON", err)
	}

	if r.IsCoin == nil {
		return nil, apperrors.NewSchemaViolationError("isCoin", "required field is missing", nil)
	}

	year, err := normalizeYear(r.Year)
	if err != nil {
		return nil, err
	}

	if r.Confidence != nil && (*r.Confidence < 0 || *r.Confidence > 100) {
		return nil, apperrors.NewSchemaViolationError("confidence", "must be within [0, 100]", nil)
	}

	result := &CoinAnalysis{IsCoin: *r.IsCoin, ActualObject: r.ActualObject}
	if !result.IsCoin {
		// Non-coin answers carry only the discriminator and the explanation;
		// coin-only fields are omitted rather than nulled.
		return result, nil
	}

	if r.Value == nil {
		return nil, apperrors.NewSchemaViolationError("value", "required field is missing", nil)
	}
	if r.Currency == nil {
		return nil, apperrors.NewSchemaViolationError("currency", "required field is missing", nil)
	}

	result.CoinType = r.CoinType
	result.Country = r.Country
	result.CountryFlag = r.CountryFlag
	result.Denomination = r.Denomination
	result.Year = year
	result.Confidence = r.Confidence
	result.Material = r.Material
	result.Value = r.Value
	result.Currency = r.Currency
	result.Condition = r.Condition
	result.Rarity = r.Rarity
	result.EstimatedValue = r.EstimatedValue
	result.EstimatedValueRange = r.EstimatedValueRange
	result.ValueFactors = r.ValueFactors
	return result, nil
}

// normalizeYear coerces a string-or-number year into its string form. The
// canonical record only ever holds a string.
func normalizeYear(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		year := n.String()
		return &year, nil
	}

	return nil, apperrors.NewSchemaViolationError("year", "must be a string or a number", nil)
}
