package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	svc := NewService()

	out, err := svc.Render("**bold** and <img src=x onerror=alert(1)>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "onerror")

	out, err = svc.Render("   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRender_PlainTextComparisons(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"less than", "if a < b then swap", "if a &lt; b then swap"},
		{"arrow", "x -> y", "x -&gt; y"},
		{"heart", "<3 thanks", "&lt;3 thanks"},
		{"ampersand", "Fix login & signup", "Fix login &amp; signup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.Render(tt.input)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRender_StripsScripts(t *testing.T) {
	out, err := NewService().Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
	assert.NotContains(t, out, "<script>")
}
