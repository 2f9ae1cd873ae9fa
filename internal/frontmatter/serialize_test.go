package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := SerializeYAML(map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "", string(out))
}

func TestSerializeYAML_DeterministicOrder(t *testing.T) {
	fields := map[string]any{
		"title":     "two",
		"permalink": "/a/",
		"weight":    3,
	}

	out1, err := SerializeYAML(fields)
	require.NoError(t, err)
	out2, err := SerializeYAML(fields)
	require.NoError(t, err)
	require.Equal(t, string(out1), string(out2))
	require.Equal(t, "permalink: /a/\ntitle: two\nweight: 3\n", string(out1))
}

func TestSerializeYAML_NestedMap_SortsKeysRecursively(t *testing.T) {
	out, err := SerializeYAML(map[string]any{
		"outer": map[string]any{"b": 2, "a": 1},
	})
	require.NoError(t, err)
	require.Equal(t, "outer:\n  a: 1\n  b: 2\n", string(out))
}
