package sanitizepkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarkup(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "PlainTextUntouched", in: "monthly rent", want: "monthly rent"},
		{name: "Tags", in: "<script>alert(1)</script>", want: "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{name: "Empty", in: "", want: ""},
		{name: "BracketsOnly", in: "a < b > c", want: "a &lt; b &gt; c"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Markup(tc.in))
		})
	}
}
