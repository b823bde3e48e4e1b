package quote

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Contact is the person (or business) requesting an estimate. Fields other
// than Email are optional; the commercial lead flow submits email only.
type Contact struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
}

// FormInput carries the calculator fields from either estimate form.
// PropertyType discriminates the residential and commercial variants;
// the pricing engine validates the fields of the matching variant.
type FormInput struct {
	PropertyType       string   `json:"propertyType,omitempty"`
	ServiceType        string   `json:"serviceType,omitempty"`
	WindowCount        *int     `json:"windowCount,omitempty"`
	ScreenCount        int      `json:"screenCount,omitempty"`
	Stories            int      `json:"stories,omitempty"`
	InteriorExterior   bool     `json:"interiorExterior,omitempty"`
	BusinessName       string   `json:"businessName,omitempty"`
	AdditionalServices []string `json:"additionalServices,omitempty"`
	SpecialRequests    string   `json:"specialRequests,omitempty"`
	ImageURLs          []string `json:"imageUrls,omitempty"`
}

// Submission is a validated quote request.
type Submission struct {
	Contact   Contact   `json:"contact"`
	FormInput FormInput `json:"formInput"`
}

// Line is one contributing item of a price breakdown. Amounts are integer
// cents and never negative.
type Line struct {
	Label       string
	AmountCents int64
}

// Breakdown is an ordered list of contributing line items. The order is
// part of the quote: it drives both the JSON object layout and the PDF.
type Breakdown []Line

func (b Breakdown) TotalCents() int64 {
	var sum int64
	for _, l := range b {
		sum += l.AmountCents
	}
	return sum
}

// MarshalJSON renders the breakdown as a label->dollars object, preserving
// line order, e.g. {"Window Cleaning (20 windows)":200.00}.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		label, err := json.Marshal(l.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(label)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatFloat(float64(l.AmountCents)/100, 'f', 2, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the priced outcome of a submission. MonthlyEquivalentCents is
// informational (recurring commercial tiers only) and is not part of
// TotalCents, which always equals Breakdown.TotalCents().
type Result struct {
	Breakdown              Breakdown
	TotalCents             int64
	Segment                string
	MonthlyEquivalentCents int64
}
