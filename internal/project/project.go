// Package project provides digitizer project persistence: lossless JSON
// round-trip of the full state and flattened CSV export.
package project

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"plot-digitizer/internal/axis"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/pkg/geometry"
)

// File is the JSON document a saved project serializes to.
type File struct {
	Title  string `json:"title"`
	XLabel string `json:"xlabel"`
	YLabel string `json:"ylabel"`

	axis.Range

	Datasets []DatasetRecord `json:"datasets"`
}

// DatasetRecord is the serialized form of one dataset.
type DatasetRecord struct {
	Name   string       `json:"name"`
	Color  string       `json:"color"`
	Points [][2]float64 `json:"points"`
}

// FromStore builds a File from the current state. All six slots are
// written, empty ones included, so a round-trip reproduces slot names
// and colors exactly.
func FromStore(title, xlabel, ylabel string, r axis.Range, s *dataset.Store) *File {
	f := &File{
		Title:  title,
		XLabel: xlabel,
		YLabel: ylabel,
		Range:  r,
	}
	for i := 0; i < dataset.MaxDatasets; i++ {
		d := s.Get(i)
		rec := DatasetRecord{
			Name:   d.Name,
			Color:  d.Color,
			Points: make([][2]float64, len(d.Points)),
		}
		for j, p := range d.Points {
			rec.Points[j] = [2]float64{p.X, p.Y}
		}
		f.Datasets = append(f.Datasets, rec)
	}
	return f
}

// Encode serializes the project to indented JSON.
func (f *File) Encode() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Decode parses a project document. The reader is permissive about the
// dataset count; documents written by other tools may carry more than
// six.
func Decode(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &f, nil
}

// ApplyTo restores the decoded datasets into the fixed-slot store. Slots
// beyond the stored count keep their defaults; records beyond the slot
// count are ignored. The RGB cache is recomputed from each record's
// color.
func (f *File) ApplyTo(s *dataset.Store) {
	for i, rec := range f.Datasets {
		if i >= dataset.MaxDatasets {
			break
		}
		d := s.Get(i)
		d.Name = rec.Name
		d.SetColor(rec.Color)
		d.Points = make([]geometry.Point2D, len(rec.Points))
		for j, p := range rec.Points {
			d.Points[j] = geometry.Point2D{X: p[0], Y: p[1]}
		}
	}
}

// Load reads and decodes a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save encodes and writes the project file.
func (f *File) Save(path string) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteCSV writes one row per point across all datasets, columns
// dataset,x,y. The dataset column holds the display name at export
// time; two identically named datasets become indistinguishable, an
// accepted limitation of the flat format.
func (f *File) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"dataset", "x", "y"}); err != nil {
		return err
	}
	for _, rec := range f.Datasets {
		for _, p := range rec.Points {
			row := []string{
				rec.Name,
				strconv.FormatFloat(p[0], 'g', -1, 64),
				strconv.FormatFloat(p[1], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the CSV document to a file.
func (f *File) ExportCSV(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.WriteCSV(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
