package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ParseSubmission turns a raw request body into a Submission. The only
// hard contact rule is a non-empty email after trimming; names are optional
// so the streamlined commercial flow can submit with email alone. FormInput
// passes through as-is, its variant fields are checked by the pricing
// engine.
func ParseSubmission(body []byte) (*Submission, error) {
	var envelope struct {
		Contact   json.RawMessage `json:"contact"`
		FormInput json.RawMessage `json:"formInput"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.New("Request body must be JSON object")
	}

	var c Contact
	if !isObject(envelope.Contact) || json.Unmarshal(envelope.Contact, &c) != nil {
		return nil, errors.New("Missing or invalid contact")
	}

	var f FormInput
	if !isObject(envelope.FormInput) || json.Unmarshal(envelope.FormInput, &f) != nil {
		return nil, errors.New("Missing or invalid formInput")
	}

	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)
	c.ZipCode = strings.TrimSpace(c.ZipCode)

	if c.Email == "" {
		return nil, errors.New("Contact email is required")
	}

	return &Submission{Contact: c, FormInput: f}, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
