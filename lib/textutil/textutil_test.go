package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	testCases := []struct {
		name   string
		expect string
	}{
		{name: "Teen And Up Audiences", expect: "teenandupaudiences"},
		{name: "  F/M\n", expect: "f/m"},
		{name: "date\tupdated", expect: "dateupdated"},
		{name: "", expect: ""},
	}
	for _, test := range testCases {
		require.Equal(t, test.expect, NormalizeName(test.name))
	}
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("best match", []string{"Best Match", "_score"}))
	require.True(t, MatchName("_SCORE", []string{"Best Match", "_score"}))
	require.False(t, MatchName("best", []string{"Best Match", "_score"}))
	require.False(t, MatchName("anything", nil))
}
