package closure_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/unitscope/internal/analysis"
	"github.com/leapstack-labs/unitscope/internal/closure"
	"github.com/leapstack-labs/unitscope/internal/provider"
	"github.com/leapstack-labs/unitscope/internal/testutil"
	"github.com/leapstack-labs/unitscope/pkg/unit"
)

func openProject(t *testing.T, files map[string]string) *provider.Provider {
	t.Helper()
	manifestPath := testutil.WriteProject(t, "project: demo\nsource_dirs:\n  - src\n", files)

	p, err := provider.Open(manifestPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Release() })
	return p
}

func TestWalk_MissingBody(t *testing.T) {
	p := openProject(t, map[string]string{
		"src/app-main.spec.unit": "unit app.main spec\nend\n",
		"src/app-main.body.unit": "unit app.main body\nuse lib.util\nend\n",
		"src/lib-util.spec.unit": "unit lib.util spec\nend\n",
		// lib.util has no body file.
	})
	w := closure.NewWalker(p, analysis.NewContext(), 0)

	entries, err := w.Walk(context.Background(), "App.Main")
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, unit.Name("app.main"), entries[0].Name)
	assert.Equal(t, unit.KindSpecification, entries[0].Kind)
	assert.False(t, entries[0].Missing)

	assert.Equal(t, unit.Name("app.main"), entries[1].Name)
	assert.Equal(t, unit.KindBody, entries[1].Kind)
	assert.False(t, entries[1].Missing)

	assert.Equal(t, unit.Name("lib.util"), entries[2].Name)
	assert.Equal(t, unit.KindSpecification, entries[2].Kind)
	assert.False(t, entries[2].Missing)

	assert.Equal(t, unit.Name("lib.util"), entries[3].Name)
	assert.Equal(t, unit.KindBody, entries[3].Kind)
	assert.True(t, entries[3].Missing)
	assert.Equal(t, "lib-util.body.unit", entries[3].Filename)
	require.Len(t, entries[3].Diagnostics, 1)
	assert.Equal(t,
		"Could not find source file for lib.util (body file)",
		entries[3].Diagnostics[0].Message)

	missing := closure.Missing(entries)
	require.Len(t, missing, 1)
	assert.Equal(t, unit.Name("lib.util"), missing[0].Name)
}

func TestWalk_Cycle(t *testing.T) {
	p := openProject(t, map[string]string{
		"src/a.spec.unit": "unit a spec\nend\n",
		"src/a.body.unit": "unit a body\nuse b\nend\n",
		"src/b.spec.unit": "unit b spec\nend\n",
		"src/b.body.unit": "unit b body\nuse a\nend\n",
	})
	w := closure.NewWalker(p, analysis.NewContext(), 2)

	entries, err := w.Walk(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Empty(t, closure.Missing(entries))
}

func TestWalk_InvalidRoot(t *testing.T) {
	p := openProject(t, nil)
	w := closure.NewWalker(p, analysis.NewContext(), 0)

	_, err := w.Walk(context.Background(), "bad name!")
	require.Error(t, err)
}

func TestWalk_CancelledContext(t *testing.T) {
	p := openProject(t, map[string]string{
		"src/a.spec.unit": "unit a spec\nend\n",
	})
	w := closure.NewWalker(p, analysis.NewContext(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Walk(ctx, "a")
	require.Error(t, err)
}

func TestWalk_ReleasedProvider(t *testing.T) {
	p := openProject(t, nil)
	require.NoError(t, p.Release())
	w := closure.NewWalker(p, analysis.NewContext(), 0)

	_, err := w.Walk(context.Background(), "a")
	assert.ErrorIs(t, err, provider.ErrReleased)
}
