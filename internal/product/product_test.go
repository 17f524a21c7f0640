package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// giftCard is a variant this package does not know about.
type giftCard struct{ Attributes }

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		name     string
		product  Product
		expected Kind
	}{
		{name: "electronics", product: NewElectronics("E-1", "Laptop", 999.5, "14 inch"), expected: KindElectronics},
		{name: "furniture", product: NewFurniture("F-1", "Chair", 49, "Oak"), expected: KindFurniture},
		{name: "clothing", product: NewClothing("C-1", "Shirt", 19.99, "Cotton"), expected: KindClothing},
		{name: "pointer variant", product: &Furniture{Attributes{ArticleNumber: "F-2"}}, expected: KindFurniture},
		{name: "unrecognized variant", product: giftCard{Attributes{ArticleNumber: "G-1"}}, expected: KindUnknown},
		{name: "nil product", product: nil, expected: KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, KindOf(tc.product))
		})
	}
}

func Test_New_CoversEveryKind(t *testing.T) {
	attrs := Attributes{ArticleNumber: "A-100", Title: "Lamp", Price: 12.5, Description: "Desk lamp"}
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			// when
			p, ok := New(kind, attrs)
			// then
			require.True(t, ok, "New must handle every kind returned by Kinds")
			assert.Equal(t, kind, KindOf(p), "KindOf must map the built variant back to its kind")
			assert.Equal(t, attrs, p.Attrs())
		})
	}
}

func Test_New_RejectsUnrecognizedKinds(t *testing.T) {
	for _, kind := range []Kind{KindUnknown, "", "books", "Electronics"} {
		t.Run(string(kind), func(t *testing.T) {
			p, ok := New(kind, Attributes{ArticleNumber: "X"})
			assert.False(t, ok)
			assert.Nil(t, p)
		})
	}
}

func Test_Attributes_ArePromoted(t *testing.T) {
	c := NewClothing("C-9", "Jacket", 120, "Wool")

	assert.Equal(t, "C-9", c.ArticleNumber)
	assert.Equal(t, "Jacket", c.Title)
	assert.InDelta(t, 120.0, c.Price, 0)
	assert.Equal(t, "Wool", c.Description)
}
