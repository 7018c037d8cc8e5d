package tabular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	cases := []struct{ in, want string }{
		{"First Class", "first_class"},
		{"first-class", "first_class"},
		{"Tenderfoot", "tenderfoot"},
		{"Citizenship in the World", "citizenship_in_the_world"},
		{"  Eagle   Scout  ", "eagle_scout"},
		{"Camping!", "camping"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeCode(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeCode_Deterministic(t *testing.T) {
	require.Equal(t, NormalizeCode("Swimming Merit Badge"), NormalizeCode("Swimming  Merit  Badge"))
}
