package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTool() *Tool {
	return &Tool{
		Name:         "ChatGPT",
		Slug:         "chatgpt",
		PricingType:  PricingFreemium,
		QualityScore: 7,
	}
}

func TestTool_Validate(t *testing.T) {
	require.NoError(t, validTool().Validate())

	tests := []struct {
		name   string
		mutate func(*Tool)
	}{
		{"missing name", func(tool *Tool) { tool.Name = "" }},
		{"missing slug", func(tool *Tool) { tool.Slug = "" }},
		{"bad pricing type", func(tool *Tool) { tool.PricingType = "cheap" }},
		{"empty pricing type", func(tool *Tool) { tool.PricingType = "" }},
		{"quality below floor", func(tool *Tool) { tool.QualityScore = 0 }},
		{"quality above ceiling", func(tool *Tool) { tool.QualityScore = 11 }},
		{"negative popularity", func(tool *Tool) { tool.PopularityScore = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := validTool()
			tt.mutate(tool)
			assert.Error(t, tool.Validate())
		})
	}
}

func TestValidPricingType(t *testing.T) {
	for _, valid := range []string{PricingFree, PricingFreemium, PricingPaid, PricingOneTime, PricingNone} {
		assert.True(t, ValidPricingType(valid), valid)
	}
	assert.False(t, ValidPricingType(""))
	assert.False(t, ValidPricingType("FREE"))
}

func TestStringArray_Value(t *testing.T) {
	value, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value, "nil stores as empty JSON array, not NULL")

	value, err = StringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(value.([]byte)))
}

func TestStringArray_Scan(t *testing.T) {
	var arr StringArray
	require.NoError(t, arr.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, StringArray{"x", "y"}, arr)

	require.NoError(t, arr.Scan(nil))
	assert.Nil(t, arr)

	assert.Error(t, arr.Scan(42))
}
