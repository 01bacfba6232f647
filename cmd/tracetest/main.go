// Command tracetest runs the auto-tracer against a graph image using a
// saved project's calibration and prints or exports the result.
package main

import (
	"flag"
	"fmt"
	"os"

	"plot-digitizer/internal/autotrace"
	"plot-digitizer/internal/calibrate"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/internal/image"
	"plot-digitizer/internal/project"
	"plot-digitizer/pkg/colorutil"
	"plot-digitizer/pkg/geometry"
)

func main() {
	imagePath := flag.String("image", "", "Path to graph image (PNG, JPEG, BMP, or TIFF)")
	projectPath := flag.String("project", "", "Path to project JSON with axis range")
	slot := flag.Int("dataset", 1, "Dataset slot to trace (1-6)")
	color := flag.String("color", "", "Target hex color (overrides the dataset's color)")
	csvPath := flag.String("csv", "", "Write the traced points to this CSV file")
	flag.Parse()

	if *imagePath == "" || *projectPath == "" {
		fmt.Println("Usage: tracetest -image <path> -project <path> [-dataset 1] [-color #RRGGBB] [-csv out.csv]")
		os.Exit(1)
	}

	layer, err := image.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", layer.Width(), layer.Height())

	proj, err := project.Load(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load project: %v\n", err)
		os.Exit(1)
	}

	store := dataset.NewStore()
	proj.ApplyTo(store)
	if *slot < 1 || *slot > dataset.MaxDatasets {
		fmt.Fprintf(os.Stderr, "Dataset slot must be 1-%d\n", dataset.MaxDatasets)
		os.Exit(1)
	}
	store.SelectActive(*slot - 1)
	target := store.ActiveDataset().RGB
	if *color != "" {
		target = colorutil.HexToRGB(*color)
	}

	// Batch use traces the full image: anchors at the image edges, so
	// the project's axis range spans the whole plot area.
	w := float64(layer.Width() - 1)
	h := float64(layer.Height() - 1)
	t := calibrate.Transform{
		Anchors: calibrate.FromClicks([4]geometry.Point2D{
			{X: 0, Y: h}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0},
		}),
		Range: proj.Range,
	}

	points := autotrace.Trace(layer, t, autotrace.IdentityView(), target)
	fmt.Printf("Traced %d points for %q (color %s)\n",
		len(points), store.ActiveDataset().Name, store.ActiveDataset().Color)

	if len(points) > 0 {
		bb := geometry.BoundingBox(points)
		fmt.Printf("X range: %g .. %g\n", bb.X, bb.X+bb.Width)
		fmt.Printf("Y range: %g .. %g\n", bb.Y, bb.Y+bb.Height)
	}

	if *csvPath != "" {
		store.ReplacePoints(store.Active(), points)
		out := project.FromStore(proj.Title, proj.XLabel, proj.YLabel, proj.Range, store)
		if err := out.ExportCSV(*csvPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *csvPath)
	}
}
