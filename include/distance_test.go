package include

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		query string
		want  int
	}{
		{name: "identical", key: "widget.h", query: "widget.h", want: 0},
		{name: "empty", key: "", query: "", want: 0},
		{name: "case only", key: "Foo.h", query: "foo.h", want: 1},
		{name: "three substitutions", key: "Foo.h", query: "Bar.h", want: 6},
		{name: "two insertions", key: "Foo.h", query: "Foo.hpp", want: 8},
		{name: "two deletions", key: "Foo.hpp", query: "Foo.h", want: 8},
		{name: "case and extension", key: "Foo.hpp", query: "foo.h", want: 9},
		{name: "one directory differs", key: "a/config.h", query: "b/config.h", want: 2},
		{name: "plural", key: "util.h", query: "utils.h", want: 4},
		{name: "index seeded empty key", key: "", query: "abc", want: 3},
		{name: "index seeded empty query", key: "abc", query: "", want: 3},
		{name: "index seeded leading insertion", key: "a", query: "ba", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.key, tt.query))
		})
	}
}

func TestDistance_SelfIsZero(t *testing.T) {
	for _, s := range []string{"a", "core/Engine.hpp", "détail.h", "../x/y.h"} {
		assert.Zero(t, Distance(s, s), s)
	}
}
