package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  Everywhere  ", "spaces-everywhere"},
		{"Game Dev & Graphics", "game-dev-graphics"},
		{"C++ / Systems", "c-systems"},
		{"already-slugged", "already-slugged"},
		{"ALLCAPS", "allcaps"},
		{"", ""},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.in), "input %q", c.in)
	}
}
