// Package app wires the services and the main window together.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/converter"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/history"
	"github.com/ytget/yt-grabber/internal/ui"
)

const (
	AppID   = "com.ytget.yt-grabber"
	AppName = "YT Grabber"

	WindowWidth  = 720
	WindowHeight = 640

	// RetrieverLookupTimeout bounds the yt-dlp lookup, which may download it
	RetrieverLookupTimeout = 2 * time.Minute
)

// Run starts the GUI and blocks until the window is closed.
func Run(version string) {
	log.Printf("%s v%s starting...", AppName, version)

	fyneApp := fyneapp.NewWithID(AppID)
	settings := config.NewSettings(fyneApp)
	fyneApp.Settings().SetTheme(ui.NewCompactTheme(settings.GetTheme()))

	capability := probeConverter(converter.NewService())

	retrieverState := &download.RetrieverState{}
	ledger := history.NewLedger(history.DefaultCapacity)
	builder := download.NewBuilder(capability,
		download.WithRetrieverCheck(retrieverState.Check),
		download.WithDefaultDestination(config.DefaultDownloadDirectory()),
	)
	downloadSvc := download.NewService(download.NewYTDLPRetriever(), ledger, capability)

	window := fyneApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := ui.NewRootUI(window, fyneApp, ui.Services{
		Settings:   settings,
		Builder:    builder,
		Downloader: downloadSvc,
		Ledger:     ledger,
	})

	go func() {
		status := resolveRetriever()
		retrieverState.Set(status)
		fyne.Do(func() {
			root.SetRetrieverStatus(status)
		})
	}()

	window.ShowAndRun()
}

// probeConverter runs the startup probe once; the result never changes
// afterwards.
func probeConverter(prober converter.Prober) converter.Capability {
	ctx, cancel := context.WithTimeout(context.Background(), converter.DefaultProbeTimeout)
	defer cancel()
	return prober.Probe(ctx)
}

func resolveRetriever() download.RetrieverStatus {
	ctx, cancel := context.WithTimeout(context.Background(), RetrieverLookupTimeout)
	defer cancel()

	status := download.EnsureRetriever(ctx)
	if status.Ready {
		log.Printf("yt-dlp %s ready at %s", status.Version, status.Executable)
	} else {
		log.Printf("yt-dlp not available: %v", status.Err)
	}
	return status
}
