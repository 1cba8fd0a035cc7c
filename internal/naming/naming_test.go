package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/unitscope/pkg/unit"
)

func TestDefaultNormalize(t *testing.T) {
	d := NewDefault()

	tests := []struct {
		raw     string
		want    unit.Name
		wantErr bool
	}{
		{raw: "pkg.child", want: "pkg.child"},
		{raw: "Pkg.Child", want: "pkg.child"},
		{raw: "  App.Main  ", want: "app.main"},
		{raw: "single", want: "single"},
		{raw: "a1.b_2", want: "a1.b_2"},
		{raw: "", wantErr: true},
		{raw: "   ", wantErr: true},
		{raw: "1bad", wantErr: true},
		{raw: "a..b", wantErr: true},
		{raw: "a.", wantErr: true},
		{raw: "_x", wantErr: true},
		{raw: "a-b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := d.Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultFilename(t *testing.T) {
	d := NewDefault()

	assert.Equal(t, "pkg-child.spec.unit", d.Filename("pkg.child", unit.KindSpecification))
	assert.Equal(t, "pkg-child.body.unit", d.Filename("pkg.child", unit.KindBody))
	assert.Equal(t, "single.spec.unit", d.Filename("single", unit.KindSpecification))
}

func TestDefaultFilename_CustomConvention(t *testing.T) {
	d := &Default{Separator: "__", SpecSuffix: ".si", BodySuffix: ".sb"}

	assert.Equal(t, "pkg__child.si", d.Filename("pkg.child", unit.KindSpecification))
	assert.Equal(t, "pkg__child.sb", d.Filename("pkg.child", unit.KindBody))
}

func TestPlaceholderFilename(t *testing.T) {
	d := NewDefault()
	assert.Equal(t, d.Filename("pkg.child", unit.KindBody), d.PlaceholderFilename("pkg.child", unit.KindBody))
}

func TestUnitFromFilename(t *testing.T) {
	d := NewDefault()

	name, kind, ok := d.UnitFromFilename("pkg-child.spec.unit")
	require.True(t, ok)
	assert.Equal(t, unit.Name("pkg.child"), name)
	assert.Equal(t, unit.KindSpecification, kind)

	name, kind, ok = d.UnitFromFilename("app.body.unit")
	require.True(t, ok)
	assert.Equal(t, unit.Name("app"), name)
	assert.Equal(t, unit.KindBody, kind)

	_, _, ok = d.UnitFromFilename("README.md")
	assert.False(t, ok)

	// Suffix matches but the stem is not a valid unit name.
	_, _, ok = d.UnitFromFilename("-broken.spec.unit")
	assert.False(t, ok)
}
