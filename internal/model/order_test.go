package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComparePaths_OrdersSegmentwise(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want int
	}{
		{"equal", []string{"src", "index.ts"}, []string{"src", "index.ts"}, 0},
		{"first segment decides", []string{"lib", "z.ts"}, []string{"src", "a.ts"}, -1},
		{"second segment decides", []string{"src", "a.ts"}, []string{"src", "b.ts"}, -1},
		{"prefix sorts first", []string{"src"}, []string{"src", "a.ts"}, -1},
		{"reverse of prefix", []string{"src", "a.ts"}, []string{"src"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ComparePaths(tc.a, tc.b))
		})
	}
}

func TestSortModules_CanonicalOrder(t *testing.T) {
	mod := func(path ...string) Module {
		return NewModule(NewDocumentable(path[len(path)-1], "", "", false, nil, ""), path, nil, nil, nil, nil, nil, nil, nil)
	}
	modules := []Module{
		mod("src", "util", "string.ts"),
		mod("src", "index.ts"),
		mod("src", "adt", "option.ts"),
	}

	SortModules(modules)

	require.Equal(t, []string{"src", "adt", "option.ts"}, modules[0].Path)
	require.Equal(t, []string{"src", "index.ts"}, modules[1].Path)
	require.Equal(t, []string{"src", "util", "string.ts"}, modules[2].Path)
}

func TestSortModules_IdenticalPathsStayStable(t *testing.T) {
	a := NewModule(NewDocumentable("first", "", "", false, nil, ""), []string{"src", "dup.ts"}, nil, nil, nil, nil, nil, nil, nil)
	b := NewModule(NewDocumentable("second", "", "", false, nil, ""), []string{"src", "dup.ts"}, nil, nil, nil, nil, nil, nil, nil)
	modules := []Module{a, b}

	SortModules(modules)

	require.Equal(t, 0, ComparePaths(modules[0].Path, modules[1].Path))
	require.Equal(t, "first", modules[0].Name)
	require.Equal(t, "second", modules[1].Name)
}
