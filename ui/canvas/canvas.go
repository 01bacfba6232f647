// Package canvas provides the graph image canvas with zoom, pointer
// digitizing, and overlay markers.
package canvas

import (
	"image"
	"image/draw"

	"plot-digitizer/internal/app"
	"plot-digitizer/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// DigitizerCanvas displays the loaded graph image and routes pointer
// events into the application state. Pointer positions are reported in
// image pixel coordinates (canvas position divided by zoom), the same
// space the calibration anchors live in.
type DigitizerCanvas struct {
	widget.BaseWidget

	state *app.State

	raster  *fynecanvas.Raster
	zoom    float64
	imgSize fyne.Size

	scroll  *zoomScroll
	content *draggableContent

	onZoomChange func(zoom float64)
}

// NewDigitizerCanvas creates the canvas bound to the application state.
func NewDigitizerCanvas(state *app.State) *DigitizerCanvas {
	dc := &DigitizerCanvas{
		state:   state,
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.raster.SetMinSize(dc.imgSize)

	dc.content = newDraggableContent(dc, dc.raster)
	dc.scroll = newZoomScroll(dc.content, dc)

	state.On(app.EventImageLoaded, func(interface{}) { dc.updateContentSize() })
	state.On(app.EventCalibrationChanged, func(interface{}) { dc.Refresh() })
	state.On(app.EventDatasetsChanged, func(interface{}) { dc.Refresh() })
	state.On(app.EventSelectionChanged, func(interface{}) { dc.Refresh() })
	state.On(app.EventProjectLoaded, func(interface{}) { dc.Refresh() })

	dc.ExtendBaseWidget(dc)
	return dc
}

// Container returns the canvas container for embedding in layouts.
func (dc *DigitizerCanvas) Container() fyne.CanvasObject {
	return dc.scroll
}

// CreateRenderer implements fyne.Widget.
func (dc *DigitizerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.scroll)
}

// OnZoomChange registers a zoom-change callback.
func (dc *DigitizerCanvas) OnZoomChange(fn func(zoom float64)) {
	dc.onZoomChange = fn
}

// SetZoom sets the zoom level, clamped to the supported range.
func (dc *DigitizerCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	dc.zoom = zoom
	dc.updateContentSize()

	if dc.onZoomChange != nil {
		dc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (dc *DigitizerCanvas) Zoom() float64 {
	return dc.zoom
}

// ZoomIn increases the zoom level.
func (dc *DigitizerCanvas) ZoomIn() {
	dc.SetZoom(dc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (dc *DigitizerCanvas) ZoomOut() {
	dc.SetZoom(dc.zoom / zoomStep)
}

func (dc *DigitizerCanvas) updateContentSize() {
	w, h := 400, 300
	if dc.state.Image != nil {
		w = dc.state.Image.Width()
		h = dc.state.Image.Height()
	}
	dc.imgSize = fyne.NewSize(float32(float64(w)*dc.zoom), float32(float64(h)*dc.zoom))
	dc.raster.SetMinSize(dc.imgSize)
	dc.content.Resize(dc.imgSize)
	dc.Refresh()
}

// Refresh redraws the canvas.
func (dc *DigitizerCanvas) Refresh() {
	dc.raster.Refresh()
	dc.BaseWidget.Refresh()
}

// draw renders the image at the current zoom plus all overlay markers.
func (dc *DigitizerCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	if dc.state.Image != nil && dc.state.Image.Image != nil {
		drawScaled(out, dc.state.Image.Image, dc.zoom)
	}
	drawMarkers(out, dc.state, dc.zoom)
	return out
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *DigitizerCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *DigitizerCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// draggableContent wraps the raster to handle pointer events.
type draggableContent struct {
	widget.BaseWidget
	canvas *DigitizerCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(dc *DigitizerCanvas, raster *fynecanvas.Raster) *draggableContent {
	c := &draggableContent{canvas: dc, raster: raster}
	c.ExtendBaseWidget(c)
	return c
}

func (c *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *draggableContent) MinSize() fyne.Size {
	return c.raster.MinSize()
}

// eventToImage converts a pointer event position to image coordinates.
func (c *draggableContent) eventToImage(pos fyne.Position) (geometry.Point2D, bool) {
	size := c.Size()
	if pos.X < 0 || pos.Y < 0 || pos.X > size.Width || pos.Y > size.Height {
		// Reject clicks outside widget bounds (fyne reports some).
		return geometry.Point2D{}, false
	}

	offset := c.canvas.scroll.Offset()
	canvasX := float64(pos.X + offset.X)
	canvasY := float64(pos.Y + offset.Y)
	return geometry.Point2D{
		X: canvasX / c.canvas.zoom,
		Y: canvasY / c.canvas.zoom,
	}, true
}

// Tapped handles primary-button clicks: calibration clicks, point picks,
// and point adds.
func (c *draggableContent) Tapped(ev *fyne.PointEvent) {
	if p, ok := c.eventToImage(ev.Position); ok {
		c.canvas.state.HandlePrimaryPress(p)
	}
}

// TappedSecondary handles secondary-button clicks: point deletion.
func (c *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if p, ok := c.eventToImage(ev.Position); ok {
		c.canvas.state.HandleSecondaryPress(p)
	}
}

// Dragged moves the picked point with the pointer.
func (c *draggableContent) Dragged(ev *fyne.DragEvent) {
	if p, ok := c.eventToImage(ev.Position); ok {
		if _, dragging := c.canvas.state.DragTarget(); !dragging {
			// Dragging should work without a separate tap first.
			c.canvas.state.BeginDrag(p)
		}
		c.canvas.state.HandleDrag(p)
	}
}

// DragEnd finishes a point drag.
func (c *draggableContent) DragEnd() {
	c.canvas.state.HandleRelease()
}
