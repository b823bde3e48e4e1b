package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubmissionMinimalCommercialLead(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{
		"contact": {"email": " lead@example.com "},
		"formInput": {"propertyType": "Commercial", "serviceType": "Biweekly Exterior", "windowCount": 12}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "lead@example.com", sub.Contact.Email)
	assert.Empty(t, sub.Contact.FirstName)
	assert.Equal(t, "Commercial", sub.FormInput.PropertyType)
	require.NotNil(t, sub.FormInput.WindowCount)
	assert.Equal(t, 12, *sub.FormInput.WindowCount)
}

func TestParseSubmissionTrimsContactFields(t *testing.T) {
	sub, err := ParseSubmission([]byte(`{
		"contact": {
			"firstName": " Jane ", "lastName": " Doe ", "email": "jane@example.com",
			"phone": " 555-0100 ", "city": " Roanoke "
		},
		"formInput": {}
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Jane", sub.Contact.FirstName)
	assert.Equal(t, "Doe", sub.Contact.LastName)
	assert.Equal(t, "555-0100", sub.Contact.Phone)
	assert.Equal(t, "Roanoke", sub.Contact.City)
}

func TestParseSubmissionRejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"not json", `not json`, "Request body must be JSON object"},
		{"missing contact", `{"formInput": {}}`, "Missing or invalid contact"},
		{"contact not object", `{"contact": "x", "formInput": {}}`, "Missing or invalid contact"},
		{"null contact", `{"contact": null, "formInput": {}}`, "Missing or invalid contact"},
		{"missing formInput", `{"contact": {"email": "a@b.com"}}`, "Missing or invalid formInput"},
		{"missing email", `{"contact": {"firstName": "Jane"}, "formInput": {}}`, "Contact email is required"},
		{"blank email", `{"contact": {"email": "   "}, "formInput": {}}`, "Contact email is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSubmission([]byte(tc.body))
			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
		})
	}
}

func TestBreakdownMarshalPreservesOrderAndDollars(t *testing.T) {
	b := Breakdown{
		{Label: "Window Cleaning (20 windows)", AmountCents: 20000},
		{Label: "Screen Cleaning (10 screens)", AmountCents: 5000},
		{Label: "2nd Story Upcharge", AmountCents: 4005},
	}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Window Cleaning (20 windows)":200.00,"Screen Cleaning (10 screens)":50.00,"2nd Story Upcharge":40.05}`,
		string(data))
	assert.Equal(t, int64(29005), b.TotalCents())
}
