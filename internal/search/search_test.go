package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name, term string
		want       bool
	}{
		{"Bob", "bob", true},
		{"BobTheBuilder", "thebu", true},
		{"Survivor", "survivr", true},
		{"Survivor", "servivr", false},
		{"Bob", "", false},
		{"Bob", "   ", false},
		{"Bob", "bib", false},
		{"Alexander", "alexandre", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Match(tc.name, tc.term), "%q ~ %q", tc.name, tc.term)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, []bool{true, false, true}, Mask([]string{"Eve", "Bob", "eve2"}, "EVE"))
	assert.Equal(t, []bool{false}, Mask([]string{"Eve"}, ""))
}
