package linear_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/apiroutes/internal/adapters/linear"
)

func newRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	return linear.NewRenderer(&buf), &buf
}

func TestRenderer_Success(t *testing.T) {
	r, buf := newRenderer(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	r.OnBuildStart("span1", "bundle app/foo+api.ts", start)
	r.OnBuildComplete("span1", start.Add(150*time.Millisecond), nil)

	assert.Equal(t,
		"[bundle app/foo+api.ts] Starting...\n"+
			"[bundle app/foo+api.ts] ✓ Completed in 150ms\n",
		buf.String())
}

func TestRenderer_Failure(t *testing.T) {
	r, buf := newRenderer(t)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	r.OnBuildStart("span1", "bundle app/bad+api.ts", start)
	r.OnBuildComplete("span1", start.Add(2*time.Second), errors.New("SyntaxError"))

	assert.Contains(t, buf.String(), "[bundle app/bad+api.ts] ✗ Failed after 2s: SyntaxError\n")
}

func TestRenderer_UnknownSpanIsIgnored(t *testing.T) {
	r, buf := newRenderer(t)

	r.OnBuildComplete("missing", time.Now(), nil)

	assert.Empty(t, buf.String())
}

func TestRenderer_FlushSummarizesAndResets(t *testing.T) {
	r, buf := newRenderer(t)
	start := time.Now()

	r.OnBuildStart("a", "bundle a", start)
	r.OnBuildStart("b", "bundle b", start)
	r.OnBuildStart("c", "bundle c", start)
	r.OnBuildComplete("a", start, nil)
	r.OnBuildComplete("b", start, nil)
	r.OnBuildComplete("c", start, errors.New("boom"))

	require.NoError(t, r.Flush())
	assert.Contains(t, buf.String(), "2 route(s) bundled, 1 failed\n")

	buf.Reset()
	require.NoError(t, r.Flush())
	assert.Empty(t, buf.String())
}
