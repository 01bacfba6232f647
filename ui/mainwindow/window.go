// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"plot-digitizer/internal/app"
	"plot-digitizer/internal/axis"
	"plot-digitizer/internal/dataset"
	"plot-digitizer/internal/detect"
	"plot-digitizer/internal/ocr"
	"plot-digitizer/internal/version"
	"plot-digitizer/ui/canvas"
	"plot-digitizer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.DigitizerCanvas

	statusBar   *widget.Label
	datasetList *widget.Select
	nameEntry   *widget.Entry
	colorEntry  *widget.Entry

	// Axis bound entries shown in the calibration panel
	xMinEntry, xMaxEntry *widget.Entry
	yMinEntry, yMaxEntry *widget.Entry
	xLogCheck, yLogCheck *widget.Check
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(fmt.Sprintf("Plot Digitizer %s", version.Version))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	state.PickRadius = p.PickRadius

	mw.setupUI()
	mw.setupEventHandlers()
	win.Resize(fyne.NewSize(1100, 750))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDigitizerCanvas(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	split := container.NewHSplit(
		mw.buildSidePanel(),
		container.NewBorder(mw.buildToolbar(), nil, nil, nil, mw.canvas.Container()),
	)
	split.SetOffset(0.27)

	mw.SetContent(container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	))
}

func (mw *MainWindow) buildToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Open Image", mw.onOpenImage),
		widget.NewButton("Open Project", mw.onOpenProject),
		widget.NewButton("Save Project", mw.onSaveProject),
		widget.NewButton("Export CSV", mw.onExportCSV),
		widget.NewSeparator(),
		widget.NewButton("Calibrate", mw.onStartCalibration),
		widget.NewButton("Auto Detect Axes", mw.onAutoDetect),
		widget.NewButton("Auto Trace", mw.onAutoTrace),
		widget.NewSeparator(),
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
	)
}

func (mw *MainWindow) buildSidePanel() fyne.CanvasObject {
	names := make([]string, dataset.MaxDatasets)
	for i := 0; i < dataset.MaxDatasets; i++ {
		names[i] = mw.state.Datasets.Get(i).Name
	}

	mw.datasetList = widget.NewSelect(names, func(string) {
		mw.state.Datasets.SelectActive(mw.datasetList.SelectedIndex())
		mw.refreshDatasetEditors()
	})
	mw.datasetList.SetSelectedIndex(0)

	mw.nameEntry = widget.NewEntry()
	mw.nameEntry.OnChanged = func(s string) {
		mw.state.Datasets.RenameActive(s)
		mw.refreshDatasetNames()
	}
	mw.colorEntry = widget.NewEntry()
	mw.colorEntry.OnChanged = func(s string) {
		mw.state.Datasets.RecolorActive(s)
		mw.canvas.Refresh()
	}
	mw.refreshDatasetEditors()

	mw.xMinEntry = widget.NewEntry()
	mw.xMaxEntry = widget.NewEntry()
	mw.yMinEntry = widget.NewEntry()
	mw.yMaxEntry = widget.NewEntry()
	mw.xLogCheck = widget.NewCheck("X log scale", nil)
	mw.yLogCheck = widget.NewCheck("Y log scale", nil)

	applyBtn := widget.NewButton("Apply Calibration", mw.onApplyCalibration)

	return container.NewVBox(
		widget.NewLabel("Active dataset"),
		mw.datasetList,
		widget.NewForm(
			widget.NewFormItem("Name", mw.nameEntry),
			widget.NewFormItem("Color", mw.colorEntry),
		),
		widget.NewSeparator(),
		widget.NewLabel("Axis range"),
		widget.NewForm(
			widget.NewFormItem("X min", mw.xMinEntry),
			widget.NewFormItem("X max", mw.xMaxEntry),
			widget.NewFormItem("Y min", mw.yMinEntry),
			widget.NewFormItem("Y max", mw.yMaxEntry),
		),
		mw.xLogCheck,
		mw.yLogCheck,
		applyBtn,
	)
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDatasetsChanged, func(interface{}) {
		mw.setStatus(fmt.Sprintf("%d points", mw.state.Datasets.TotalPoints()))
	})
	mw.state.On(app.EventCalibrationChanged, func(interface{}) {
		if mw.state.Session.Active() {
			prompts := [4]string{"x-axis minimum", "x-axis maximum", "y-axis minimum", "y-axis maximum"}
			n := mw.state.Session.ClickCount()
			if n < 4 {
				mw.setStatus(fmt.Sprintf("Calibration: click the %s (%d/4)", prompts[n], n+1))
			}
		} else if mw.state.Session.Complete() {
			mw.setStatus("Calibration clicks recorded; enter axis bounds and apply")
		}
	})
	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		mw.setStatus(fmt.Sprintf("Saved %v", data))
	})
}

func (mw *MainWindow) refreshDatasetEditors() {
	d := mw.state.Datasets.ActiveDataset()
	mw.nameEntry.SetText(d.Name)
	mw.colorEntry.SetText(d.Color)
}

func (mw *MainWindow) refreshDatasetNames() {
	names := make([]string, dataset.MaxDatasets)
	for i := 0; i < dataset.MaxDatasets; i++ {
		names[i] = mw.state.Datasets.Get(i).Name
	}
	mw.datasetList.Options = names
	mw.datasetList.Refresh()
}

func (mw *MainWindow) setStatus(msg string) {
	mw.statusBar.SetText(msg)
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.LastDirectory = filepath.Dir(path)
		mw.setStatus(fmt.Sprintf("Loaded %s", filepath.Base(path)))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif"}))
	fd.Show()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.refreshDatasetNames()
		mw.refreshDatasetEditors()
		mw.setStatus(fmt.Sprintf("Opened %s", filepath.Base(path)))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName(mw.state.DefaultFilename() + ".json")
	fd.Show()
}

func (mw *MainWindow) onExportCSV() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.ExportCSV(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.setStatus(fmt.Sprintf("Exported %s", filepath.Base(path)))
	}, mw.Window)
	fd.SetFileName(mw.state.DefaultFilename() + ".csv")
	fd.Show()
}

func (mw *MainWindow) onStartCalibration() {
	if err := mw.state.StartCalibration(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onApplyCalibration() {
	r := axis.Range{
		XLog: mw.xLogCheck.Checked,
		YLog: mw.yLogCheck.Checked,
	}
	var ok bool
	if r.XMin, ok = axis.ParseBound(mw.xMinEntry.Text); !ok {
		mw.setStatus("X min is not a number")
		return
	}
	if r.XMax, ok = axis.ParseBound(mw.xMaxEntry.Text); !ok {
		mw.setStatus("X max is not a number")
		return
	}
	if r.YMin, ok = axis.ParseBound(mw.yMinEntry.Text); !ok {
		mw.setStatus("Y min is not a number")
		return
	}
	if r.YMax, ok = axis.ParseBound(mw.yMaxEntry.Text); !ok {
		mw.setStatus("Y max is not a number")
		return
	}

	if err := mw.state.ApplyCalibration(r); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.setStatus("Calibration applied")
}

// onAutoDetect locates the plot frame, pre-fills the anchor clicks from
// it, and asks OCR for axis bound suggestions.
func (mw *MainWindow) onAutoDetect() {
	if mw.state.Image == nil {
		dialog.ShowError(app.ErrNoImage, mw.Window)
		return
	}

	frame, err := detect.FindPlotFrame(mw.state.Image.Image)
	if err != nil {
		dialog.ShowError(fmt.Errorf("axis detection failed: %w", err), mw.Window)
		return
	}

	// Feed the detected corners through the normal click path so the
	// session semantics stay identical to manual calibration.
	if err := mw.state.StartCalibration(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	for _, p := range frame.Anchors.Points() {
		mw.state.HandlePrimaryPress(p)
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		log.Printf("mainwindow: OCR unavailable: %v", err)
		mw.setStatus("Axes detected; enter axis bounds and apply")
		return
	}
	defer engine.Close()

	if s, err := engine.SuggestBounds(mw.state.Image.Image, frame.Bounds); err == nil {
		if s.XOK {
			mw.xMinEntry.SetText(fmt.Sprintf("%g", s.XMin))
			mw.xMaxEntry.SetText(fmt.Sprintf("%g", s.XMax))
		}
		if s.YOK {
			mw.yMinEntry.SetText(fmt.Sprintf("%g", s.YMin))
			mw.yMaxEntry.SetText(fmt.Sprintf("%g", s.YMax))
		}
	}
	mw.setStatus("Axes detected; review axis bounds and apply")
}

func (mw *MainWindow) onAutoTrace() {
	if err := mw.state.RunAutoTrace(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	d := mw.state.Datasets.ActiveDataset()
	mw.setStatus(fmt.Sprintf("Traced %d points into %q", len(d.Points), d.Name))
}

// SavePreferences persists window preferences.
func (mw *MainWindow) SavePreferences() {
	mw.prefs.PickRadius = mw.state.PickRadius
	mw.prefs.Zoom = mw.canvas.Zoom()
	if err := mw.prefs.Save(); err != nil {
		log.Printf("mainwindow: failed to save preferences: %v", err)
	}
}
