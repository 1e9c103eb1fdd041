package tree

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-yarnwhy/graph"
	"github.com/albertocavalcante/go-yarnwhy/label"
	"github.com/albertocavalcante/go-yarnwhy/lockfile"
)

func path(descriptors ...string) graph.Path {
	p := make(graph.Path, len(descriptors))
	for i, s := range descriptors {
		p[i] = label.MustDescriptor(s)
	}
	return p
}

// whyFixture runs the full pipeline for a bare-name query over a fixture.
func whyFixture(t *testing.T, fixture, name string) (*graph.Graph, Forest) {
	t.Helper()

	lf, err := lockfile.ReadFile(filepath.Join("..", "testdata", fixture))
	require.NoError(t, err)

	g := graph.Build(lockfile.Normalize(lf.Entries))
	set := g.Paths(g.Resolve(graph.Query{Name: name}), graph.WalkOptions{})
	require.NotEmpty(t, set.Paths)

	return g, Build(graph.SortPaths(set.Paths), g.Version)
}

func TestBuild_SharesPrefixes(t *testing.T) {
	forest := Build([]graph.Path{
		path("a@1", "b@1", "c@1"),
		path("a@1", "b@1", "d@1"),
		path("x@1", "d@1"),
	}, nil)

	require.Len(t, forest, 2)
	a := forest[0]
	assert.Equal(t, "a@1", a.Descriptor().String())
	require.Len(t, a.Children(), 1)

	b := a.Children()[0]
	require.Len(t, b.Children(), 2)
	assert.Equal(t, "c@1", b.Children()[0].Descriptor().String())
	assert.Equal(t, "d@1", b.Children()[1].Descriptor().String())
	assert.Equal(t, 6, forest.Size())
}

func TestBuild_DivergentBranchesGetDistinctNodes(t *testing.T) {
	forest := Build([]graph.Path{
		path("a@1", "b@1", "q@1"),
		path("a@1", "c@1", "q@1"),
	}, nil)

	require.Len(t, forest, 1)
	children := forest[0].Children()
	require.Len(t, children, 2)

	q1 := children[0].Children()[0]
	q2 := children[1].Children()[0]
	assert.Equal(t, q1.Descriptor(), q2.Descriptor())
	assert.NotSame(t, q1, q2)
}

func TestBuild_RepeatedPathsAddNothing(t *testing.T) {
	forest := Build([]graph.Path{
		path("a@1", "b@1"),
		path("a@1", "b@1"),
		path("a@1"),
	}, nil)

	assert.Equal(t, 2, forest.Size())
}

func TestBuild_Versions(t *testing.T) {
	versions := map[string]string{"a@1": "1.0.0"}
	forest := Build([]graph.Path{path("a@1", "b@^2")}, func(d label.Descriptor) string {
		return versions[d.String()]
	})

	assert.Equal(t, "1.0.0", forest[0].Version())
	assert.Equal(t, "", forest[0].Children()[0].Version())
	assert.Equal(t, "└─ a@1.0.0 (via 1)\n   └─ b (via ^2)\n", forest.ToText(Palette{}))
}

func TestNode_ChildrenIsCopy(t *testing.T) {
	forest := Build([]graph.Path{path("a@1", "b@1")}, nil)

	children := forest[0].Children()
	children[0] = nil

	assert.NotNil(t, forest[0].Children()[0])
	assert.False(t, forest[0].IsLeaf())
	assert.True(t, forest[0].Children()[0].IsLeaf())
}

func TestClassify(t *testing.T) {
	forest := Build([]graph.Path{path("a@1", "b@1"), path("c@1")}, nil)
	kinds := Classify(forest)

	assert.Equal(t, Internal, kinds[forest[0]])
	assert.Equal(t, Leaf, kinds[forest[0].Children()[0]])
	assert.Equal(t, Leaf, kinds[forest[1]])
}

func TestDedup(t *testing.T) {
	tests := []struct {
		name  string
		paths []graph.Path
		want  string
	}{
		{
			name: "repeated internal subtree collapses",
			paths: []graph.Path{
				path("r1@1", "x@1", "y@1", "q@1"),
				path("r2@1", "x@1", "y@1", "q@1"),
			},
			want: "" +
				"├─ r1 (via 1)\n" +
				"│  └─ x (via 1)\n" +
				"│     └─ y (via 1)\n" +
				"│        └─ q (via 1)\n" +
				"└─ r2 (via 1)\n" +
				"   └─ x (via 1)\n",
		},
		{
			name: "repeated parent of the queried leaf is kept",
			paths: []graph.Path{
				path("r1@1", "y@1", "q@1"),
				path("r2@1", "y@1", "q@1"),
			},
			want: "" +
				"├─ r1 (via 1)\n" +
				"│  └─ y (via 1)\n" +
				"│     └─ q (via 1)\n" +
				"└─ r2 (via 1)\n" +
				"   └─ y (via 1)\n" +
				"      └─ q (via 1)\n",
		},
		{
			name: "two matching ranges under one parent stay visible",
			paths: []graph.Path{
				path("r1@1", "y@1", "q@1"),
				path("r1@1", "y@1", "q@2"),
				path("r2@1", "y@1", "q@1"),
				path("r2@1", "y@1", "q@2"),
			},
			want: "" +
				"├─ r1 (via 1)\n" +
				"│  └─ y (via 1)\n" +
				"│     ├─ q (via 1)\n" +
				"│     └─ q (via 2)\n" +
				"└─ r2 (via 1)\n" +
				"   └─ y (via 1)\n" +
				"      ├─ q (via 1)\n" +
				"      └─ q (via 2)\n",
		},
		{
			name: "distinct descriptors are untouched",
			paths: []graph.Path{
				path("a@1", "b@1"),
				path("c@1", "d@1"),
			},
			want: "" +
				"├─ a (via 1)\n" +
				"│  └─ b (via 1)\n" +
				"└─ c (via 1)\n" +
				"   └─ d (via 1)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := Build(tt.paths, nil)
			before := forest.ToText(Palette{})

			deduped := Dedup(forest)
			assert.Equal(t, tt.want, deduped.ToText(Palette{}))
			assert.Equal(t, before, forest.ToText(Palette{}), "Dedup must not modify its input")

			again := Dedup(deduped)
			assert.Equal(t, deduped.ToText(Palette{}), again.ToText(Palette{}), "Dedup must be idempotent")
		})
	}
}

func TestScenario_Diamond(t *testing.T) {
	_, forest := whyFixture(t, "berry.lock", "node-gyp")

	want := "" +
		"└─ app@0.0.0-use.local (via .)\n" +
		"   └─ vite@5.2.4 (via ^5.2.4)\n" +
		"      ├─ fsevents@2.3.3 (via ~2.3.3)\n" +
		"      │  └─ node-gyp@10.0.1 (via latest)\n" +
		"      └─ rollup@4.13.0 (via ^4.13.0)\n" +
		"         └─ fsevents@2.3.3 (via ~2.3.2)\n" +
		"            └─ node-gyp@10.0.1 (via latest)\n"

	deduped := Dedup(forest)
	assert.Equal(t, want, deduped.ToText(Palette{}))
	assert.Equal(t, want, Dedup(deduped).ToText(Palette{}))
}

func TestScenario_RootPackage(t *testing.T) {
	_, forest := whyFixture(t, "classic.lock", "foolib")

	assert.Equal(t, "└─ foolib@2.0.0 (via 1.2.3 || ^2.0.0)\n", Dedup(forest).ToText(Palette{}))
}

func TestWriteText(t *testing.T) {
	_, forest := whyFixture(t, "classic.lock", "foolib")

	var buf bytes.Buffer
	require.NoError(t, forest.WriteText(&buf, Palette{}))
	assert.Equal(t, forest.ToText(Palette{}), buf.String())
}

func TestToJSON(t *testing.T) {
	_, forest := whyFixture(t, "berry.lock", "node-gyp")
	forest = Dedup(forest)

	data, err := forest.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x1b")

	var decoded []JSONNode
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, forest.JSONNodes(), decoded)

	require.Len(t, decoded, 1)
	assert.Equal(t, "app@.", decoded[0].Descriptor)
	assert.Equal(t, "0.0.0-use.local", decoded[0].Version)
}

func TestToJSON_OmitsEmptyChildren(t *testing.T) {
	_, forest := whyFixture(t, "classic.lock", "foolib")

	data, err := forest.ToJSON()
	require.NoError(t, err)

	want := "[\n" +
		"  {\n" +
		"    \"descriptor\": \"foolib@1.2.3 || ^2.0.0\",\n" +
		"    \"version\": \"2.0.0\"\n" +
		"  }\n" +
		"]\n"
	assert.Equal(t, want, string(data))
}

func TestToJSON_NoHTMLEscaping(t *testing.T) {
	forest := Build([]graph.Path{path("a@>=1.0.0 <2.0.0")}, nil)

	data, err := forest.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a@>=1.0.0 <2.0.0"`)
}

func TestToJSON_Empty(t *testing.T) {
	data, err := Forest(nil).ToJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestToDOT(t *testing.T) {
	_, forest := whyFixture(t, "berry.lock", "node-gyp")
	dot := Dedup(forest).ToDOT()

	assert.True(t, strings.HasPrefix(dot, "digraph why {\n"))
	assert.Contains(t, dot, `n0 [label="app@0.0.0-use.local\n(via .)"];`)
	assert.Contains(t, dot, "n0 -> n1;")
	assert.Equal(t, 2, strings.Count(dot, `label="node-gyp@10.0.1\n(via latest)"`))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestPalette_ZeroValueIsPlain(t *testing.T) {
	_, forest := whyFixture(t, "berry.lock", "node-gyp")

	assert.NotContains(t, forest.ToText(Palette{}), "\x1b")
}
