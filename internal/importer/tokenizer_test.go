package importer

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type TokenizerTestSuite struct {
	suite.Suite
}

func TestTokenizerSuite(t *testing.T) {
	suite.Run(t, new(TokenizerTestSuite))
}

func (suite *TokenizerTestSuite) TestSplitLine() {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims fields", " a , b ,c ", []string{"a", "b", "c"}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"quoted comma", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"unterminated quote swallows rest", `"a,b`, []string{"a,b"}},
		{"empty line", "", []string{""}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, splitLine(tc.line))
		})
	}
}

func (suite *TokenizerTestSuite) TestParseStrictFloat() {
	valid := map[string]float64{
		"1":       1,
		" 2.5 ":   2.5,
		"-3":      -3,
		"1e3":     1000,
		"0.00001": 0.00001,
	}
	for text, expected := range valid {
		value, ok := parseStrictFloat(text)
		suite.True(ok, text)
		suite.Equal(expected, value, text)
	}

	for _, text := range []string{"", "  ", "abc", "1.2.3", "12abc", "NaN", "inf", "-Inf"} {
		_, ok := parseStrictFloat(text)
		suite.False(ok, text)
	}
}

func (suite *TokenizerTestSuite) TestNormalizeHeader() {
	suite.Equal("close", normalizeHeader(" <CLOSE> "))
	suite.Equal("vol", normalizeHeader("Vol"))
	suite.Equal("<open", normalizeHeader("<open"))
}
