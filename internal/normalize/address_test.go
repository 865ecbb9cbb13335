package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileAddressDiscreteFieldsWin(t *testing.T) {
	got := ReconcileAddress(AddressInput{
		FullAddress: "99 Other Rd, Shelbyville, IL 60000",
		Street:      "12 Main St",
		City:        "Springfield",
		State:       "il",
		PostalCode:  "62704",
	})

	assert.Equal(t, "12 Main St", got.StreetAddress)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressFullBlob(t *testing.T) {
	got := ReconcileAddress(AddressInput{
		FullAddress: "12 Main St, Apt 4, Springfield, IL 62704",
	})

	assert.Equal(t, "12 Main St", got.StreetAddress)
	assert.Equal(t, "Apt 4", got.AddressLine2)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressBlobNoLine2(t *testing.T) {
	got := ReconcileAddress(AddressInput{
		FullAddress: "12 Main St, Springfield, IL 62704",
	})

	assert.Equal(t, "12 Main St", got.StreetAddress)
	assert.Empty(t, got.AddressLine2)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressSpaceFormCityStateZip(t *testing.T) {
	got := ReconcileAddress(AddressInput{
		FullAddress: "12 Main St, Springfield IL 62704",
	})

	assert.Equal(t, "12 Main St", got.StreetAddress)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressCombinedCell(t *testing.T) {
	tests := []struct {
		input string
		city  string
		state string
		zip   string
	}{
		{"Springfield, IL 62704", "Springfield", "IL", "62704"},
		{"Springfield, IL 62704-1234", "Springfield", "IL", "62704-1234"},
		{"Springfield, IL", "Springfield", "IL", ""},
		{"Springfield IL 62704", "Springfield", "IL", "62704"},
		{"New Berlin, WI 53151", "New Berlin", "WI", "53151"},
	}

	for _, tt := range tests {
		got := ReconcileAddress(AddressInput{CityStateZip: tt.input})
		assert.Equal(t, tt.city, got.City, "input %q", tt.input)
		assert.Equal(t, tt.state, got.State, "input %q", tt.input)
		assert.Equal(t, tt.zip, got.PostalCode, "input %q", tt.input)
	}
}

func TestReconcileAddressUnparseableCombinedCellBecomesCity(t *testing.T) {
	got := ReconcileAddress(AddressInput{CityStateZip: "Springfield"})
	assert.Equal(t, "Springfield", got.City)
	assert.Empty(t, got.State)
}

func TestReconcileAddressMultilineBlob(t *testing.T) {
	got := ReconcileAddress(AddressInput{
		FullAddress: "12 Main St\nSpringfield, IL 62704",
	})

	assert.Equal(t, "12 Main St", got.StreetAddress)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressLoneLocationBlob(t *testing.T) {
	got := ReconcileAddress(AddressInput{FullAddress: "Springfield IL 62704"})
	assert.Empty(t, got.StreetAddress)
	assert.Equal(t, "Springfield", got.City)
	assert.Equal(t, "IL", got.State)
	assert.Equal(t, "62704", got.PostalCode)
}

func TestReconcileAddressEmpty(t *testing.T) {
	got := ReconcileAddress(AddressInput{})
	assert.Equal(t, Address{}, got)
}
