package params

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rfm-segment/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `R:Interval,0-30,3
R:Interval,31-90,2
R:GreaterThan,90,1

# commentaire sans deux-points ignoré
F:大于,10,3
F:区间,3-10,2
F:小于,3,1
X:Interval,0-1,9
M:LessThan,100,1
M:Interval,100-1000,2
M:GreaterThan,1000,3
`

func TestParse(t *testing.T) {
	rules, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, []models.Rule{
		models.NewInterval(0, 30, 3),
		models.NewInterval(31, 90, 2),
		models.NewGreaterThan(90, 1),
	}, rules[models.Recency].Rules())
	assert.Equal(t, []models.Rule{
		models.NewGreaterThan(10, 3),
		models.NewInterval(3, 10, 2),
		models.NewLessThan(3, 1),
	}, rules[models.Frequency].Rules())
	assert.Equal(t, 3, rules[models.Monetary].Len())
}

func TestParse_DuplicateKeyOverwrites(t *testing.T) {
	rules, err := Parse(strings.NewReader("R:Interval,0-10,1\nR:LessThan,0,2\nR:Interval,0-10,5\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.Rule{
		models.NewInterval(0, 10, 5),
		models.NewLessThan(0, 2),
	}, rules[models.Recency].Rules())
}

func TestParse_NegativeIntervalBound(t *testing.T) {
	rules, err := Parse(strings.NewReader("M:Interval,-5-10,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []models.Rule{models.NewInterval(-5, 10, 1)}, rules[models.Monetary].Rules())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"too few fields", "R:Interval,0-10\n", "line 1 (R)"},
		{"unknown type", "F:Between,0-10,1\n", "unsupported type"},
		{"interval without dash", "M:Interval,10,1\n", "min-max"},
		{"bad score", "\nR:GreaterThan,5,x\n", "line 2 (R)"},
		{"bad bound", "F:LessThan,abc,1\n", "invalid bound"},
		{"extra colon", "R:Interval,0-1:2,3\n", "':'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.ErrorIs(t, err, models.ErrParse)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "params.txt")
	require.NoError(t, os.WriteFile(p, []byte("\ufeffR:Interval,0-10,4\n"), 0o644))

	rules, err := ParseFile(p)
	require.NoError(t, err)
	assert.Equal(t, 1, rules[models.Recency].Len())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	rules, err := Parse(strings.NewReader("M:小于,100,1\nR:Interval,0-30,3\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, rules))
	assert.Equal(t, "R:Interval,0-30,3\nM:LessThan,100,1\n", buf.String())
}

func TestParseThresholds(t *testing.T) {
	th, err := ParseThresholds("3, 2,4")
	require.NoError(t, err)
	assert.Equal(t, &models.Thresholds{Recency: 3, Frequency: 2, Monetary: 4}, th)

	th, err = ParseThresholds("  ")
	require.NoError(t, err)
	assert.Nil(t, th)

	for _, bad := range []string{"1,2", "1,2,x", "1,2,3,4"} {
		_, err := ParseThresholds(bad)
		require.ErrorIs(t, err, models.ErrParse, bad)
		assert.Contains(t, err.Error(), "R,F,M")
	}
}
