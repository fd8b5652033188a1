package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"lowercases", "Amazon", "amazon"},
		{"already canonical", "amazon", "amazon"},
		{"trims whitespace", "  Flipkart \t", "flipkart"},
		{"single letter case fold", "A", "a"},
		{"empty", "", ""},
		{"reliance typo rewritten", "relianceigital", "reliancedigital"},
		{"reliance typo with case and space", " RelianceIgital ", "reliancedigital"},
		{"correct reliance untouched", "reliancedigital", "reliancedigital"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VendorKey(tt.raw))
		})
	}
}

func TestVendorKey_CaseVariantsCollapse(t *testing.T) {
	// "Amazon" and "amazon" must resolve to the same vendor row key.
	assert.Equal(t, VendorKey("amazon"), VendorKey("Amazon"))
	assert.Equal(t, VendorKey("AMAZON"), VendorKey("Amazon"))
}

func TestInt(t *testing.T) {
	require.Nil(t, Int(""))
	require.Nil(t, Int("   "))
	require.Nil(t, Int("seven"))
	require.Nil(t, Int("3.5"))

	n := Int("7")
	require.NotNil(t, n)
	assert.Equal(t, 7, *n)

	n = Int(" 42 ")
	require.NotNil(t, n)
	assert.Equal(t, 42, *n)
}

func TestFloat(t *testing.T) {
	require.Nil(t, Float(""))
	require.Nil(t, Float("n/a"))

	f := Float("4.5")
	require.NotNil(t, f)
	assert.Equal(t, 4.5, *f)
}

func TestPrice_CoercesFailureToZero(t *testing.T) {
	// Price policy is distinct from Float: unparseable imports as 0,
	// never nil and never an error.
	assert.Equal(t, 0.0, Price(""))
	assert.Equal(t, 0.0, Price("not-a-price"))
	assert.Equal(t, 1299.0, Price("1299"))
	assert.Equal(t, 99.99, Price(" 99.99 "))
}

func TestDistinctCoercionPolicies(t *testing.T) {
	// An unparseable days_to_deliver or rating is nil while an
	// unparseable price is 0. Both policies must hold at once.
	assert.Nil(t, Int("unknown"))
	assert.Nil(t, Float("unknown"))
	assert.Equal(t, 0.0, Price("unknown"))
}

func TestString(t *testing.T) {
	assert.Nil(t, String(""))
	assert.Nil(t, String("   "))

	s := String("  hello ")
	require.NotNil(t, s)
	assert.Equal(t, "hello", *s)
}
