package project

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"plot-digitizer/internal/axis"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/pkg/colorutil"
	"plot-digitizer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore() *dataset.Store {
	s := dataset.NewStore()
	s.RenameActive("voltage")
	s.AddPoint(0, geometry.Point2D{X: 1.5, Y: -2})
	s.AddPoint(0, geometry.Point2D{X: 3, Y: 0.25})
	s.SelectActive(2)
	s.RecolorActive("#123456")
	s.AddPoint(2, geometry.Point2D{X: 100, Y: 1e-3})
	return s
}

func TestJSONRoundTrip(t *testing.T) {
	r := axis.Range{XMin: 0, XMax: 100, YMin: 1, YMax: 1000, YLog: true}
	src := sampleStore()

	f := FromStore("IV Curve", "V", "I", r, src)
	data, err := f.Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, "IV Curve", got.Title)
	assert.Equal(t, "V", got.XLabel)
	assert.Equal(t, "I", got.YLabel)
	assert.Equal(t, r, got.Range)
	require.Len(t, got.Datasets, dataset.MaxDatasets)

	dst := dataset.NewStore()
	got.ApplyTo(dst)
	for i := 0; i < dataset.MaxDatasets; i++ {
		want, have := src.Get(i), dst.Get(i)
		assert.Equal(t, want.Name, have.Name, "slot %d name", i)
		assert.Equal(t, want.Color, have.Color, "slot %d color", i)
		assert.Equal(t, want.Points, have.Points, "slot %d points", i)
	}
}

func TestJSONFieldNames(t *testing.T) {
	f := FromStore("t", "x", "y", axis.Range{XMax: 1, YMax: 1}, dataset.NewStore())
	data, err := f.Encode()
	require.NoError(t, err)

	for _, key := range []string{
		`"title"`, `"xlabel"`, `"ylabel"`,
		`"x_min"`, `"x_max"`, `"y_min"`, `"y_max"`, `"x_log"`, `"y_log"`,
		`"datasets"`, `"name"`, `"color"`, `"points"`,
	} {
		assert.Contains(t, string(data), key)
	}
}

// Documents from other tools may carry more than six datasets; the
// extras decode fine and ApplyTo drops them.
func TestDecodePermissiveDatasetCount(t *testing.T) {
	doc := []byte(`{
		"title": "crowded",
		"x_min": 0, "x_max": 1, "y_min": 0, "y_max": 1,
		"datasets": [
			{"name": "a", "color": "#FF0000", "points": [[1, 2]]},
			{"name": "b", "color": "#00FF00", "points": []},
			{"name": "c", "color": "#0000FF", "points": []},
			{"name": "d", "color": "#111111", "points": []},
			{"name": "e", "color": "#222222", "points": []},
			{"name": "f", "color": "#333333", "points": []},
			{"name": "g", "color": "#444444", "points": [[9, 9]]}
		]
	}`)

	f, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, f.Datasets, 7)

	s := dataset.NewStore()
	f.ApplyTo(s)
	assert.Equal(t, "a", s.Get(0).Name)
	assert.Equal(t, "f", s.Get(5).Name)
	assert.Nil(t, s.Get(6))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"title": `))
	assert.Error(t, err)
}

func TestApplyToRecomputesRGB(t *testing.T) {
	doc := []byte(`{"datasets": [{"name": "n", "color": "#FF0000", "points": []}]}`)
	f, err := Decode(doc)
	require.NoError(t, err)

	s := dataset.NewStore()
	f.ApplyTo(s)
	assert.Equal(t, colorutil.RGB{R: 1}, s.Get(0).RGB)
}

func TestWriteCSV(t *testing.T) {
	f := &File{
		Datasets: []DatasetRecord{
			{Name: "voltage", Points: [][2]float64{{1.5, -2}, {3, 0.25}}},
			{Name: "empty"},
			{Name: "current", Points: [][2]float64{{100, 0.001}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	want := "dataset,x,y\n" +
		"voltage,1.5,-2\n" +
		"voltage,3,0.25\n" +
		"current,100,0.001\n"
	assert.Equal(t, want, buf.String())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj.json")

	f := FromStore("saved", "a", "b", axis.Range{XMax: 10, YMax: 10}, sampleStore())
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestExportCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	f := FromStore("t", "x", "y", axis.Range{}, sampleStore())
	require.NoError(t, f.ExportCSV(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("dataset,x,y\n")))
	assert.Contains(t, string(data), "voltage,1.5,-2\n")
}

func TestSafeFilename(t *testing.T) {
	now := time.Date(2026, 8, 24, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		title string
		want  string
	}{
		{"IV Curve", "IV_Curve"},
		{"plot-2.4", "plot-2.4"},
		{"a  b//c", "a_b_c"},           // runs collapse
		{"__weird__", "weird"},         // edges trimmed
		{"...", "plot_20260824_150405"}, // sanitizes to nothing
		{"", "plot_20260824_150405"},
		{"Ω résumé", "r_sum"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFilename(tt.title, now), "title %q", tt.title)
	}
}
