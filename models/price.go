package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Price is a monetary amount in major currency units that tolerates the
// three shapes the store actually contains: absent, a plain number, or a
// Decimal128 value (which the JSON API surfaces as {"$numberDecimal": "..."}).
// All reads go through one normalization path.
type Price struct {
	value float64
	set   bool
}

// NewPrice returns a set Price holding the given major-unit amount.
func NewPrice(v float64) Price {
	return Price{value: v, set: true}
}

// IsSet reports whether the price was present at all.
func (p Price) IsSet() bool {
	return p.set
}

// Float64 returns the amount in major units, 0 when absent.
func (p Price) Float64() float64 {
	if !p.set {
		return 0
	}
	return p.value
}

// MinorUnits returns the amount in the payment provider's minor currency
// unit (major * 100, rounded).
func (p Price) MinorUnits() int64 {
	return int64(math.Round(p.Float64() * 100))
}

type decimalWrapper struct {
	NumberDecimal string `json:"$numberDecimal"`
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}

	if string(data) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*p = NewPrice(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return fmt.Errorf("invalid price string %q: %w", str, err)
		}
		*p = NewPrice(parsed)
		return nil
	}

	var wrapped decimalWrapper
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.NumberDecimal == "" {
		return fmt.Errorf("unsupported price representation: %s", data)
	}
	parsed, err := strconv.ParseFloat(wrapped.NumberDecimal, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal price %q: %w", wrapped.NumberDecimal, err)
	}
	*p = NewPrice(parsed)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.value)
}

func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*p = Price{}
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		return nil
	case bson.TypeDouble:
		*p = NewPrice(raw.Double())
		return nil
	case bson.TypeInt32:
		*p = NewPrice(float64(raw.Int32()))
		return nil
	case bson.TypeInt64:
		*p = NewPrice(float64(raw.Int64()))
		return nil
	case bson.TypeString:
		parsed, err := strconv.ParseFloat(raw.StringValue(), 64)
		if err != nil {
			return fmt.Errorf("invalid price string %q: %w", raw.StringValue(), err)
		}
		*p = NewPrice(parsed)
		return nil
	case bson.TypeDecimal128:
		dec, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("malformed decimal128 price")
		}
		parsed, err := strconv.ParseFloat(dec.String(), 64)
		if err != nil {
			return fmt.Errorf("invalid decimal128 price %q: %w", dec.String(), err)
		}
		*p = NewPrice(parsed)
		return nil
	default:
		return fmt.Errorf("unsupported price BSON type %s", t)
	}
}

func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !p.set {
		return bson.TypeNull, nil, nil
	}
	return bson.MarshalValue(p.value)
}
