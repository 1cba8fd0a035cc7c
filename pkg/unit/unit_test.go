package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "specification", KindSpecification.String())
	assert.Equal(t, "body", KindBody.String())
}

func TestKindDescribeFile(t *testing.T) {
	assert.Equal(t, "specification file", KindSpecification.DescribeFile())
	assert.Equal(t, "body file", KindBody.DescribeFile())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "spec", want: KindSpecification},
		{in: "specification", want: KindSpecification},
		{in: "SPEC", want: KindSpecification},
		{in: "body", want: KindBody},
		{in: "implementation", want: KindBody},
		{in: " body ", want: KindBody},
		{in: "interface", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNameParent(t *testing.T) {
	assert.Equal(t, Name("pkg"), Name("pkg.child").Parent())
	assert.Equal(t, Name("pkg.child"), Name("pkg.child.leaf").Parent())
	assert.Equal(t, Name(""), Name("pkg").Parent())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Filename: "a.unit", Line: 3, Message: "bad"}
	assert.Equal(t, "a.unit:3: bad", d.String())

	d = Diagnostic{Filename: "a.unit", Message: "bad"}
	assert.Equal(t, "a.unit: bad", d.String())

	d = Diagnostic{Message: "bad"}
	assert.Equal(t, "bad", d.String())
}
