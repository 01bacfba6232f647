// Package main provides the entry point for the Plot Digitizer application.
package main

import (
	"log"
	"os"
	"strings"

	"plot-digitizer/internal/app"
	"plot-digitizer/internal/version"
	"plot-digitizer/ui/mainwindow"
	"plot-digitizer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	fyneApp := fyneapp.NewWithID("io.plotdigitizer")

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// A project or image path may be given on the command line.
	if len(os.Args) > 1 {
		path := os.Args[1]
		var err error
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			err = appState.LoadProject(path)
		} else {
			err = appState.LoadImage(path)
		}
		if err != nil {
			log.Printf("Failed to open %s: %v", path, err)
		}
	}

	win.SetOnClosed(win.SavePreferences)
	win.ShowAndRun()
}
