package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/imgshift/imgshift/internal/config"
	"github.com/imgshift/imgshift/internal/convert"
	"github.com/imgshift/imgshift/internal/platform"
	"github.com/imgshift/imgshift/internal/preview"
	"github.com/imgshift/imgshift/internal/ui"
	"github.com/imgshift/imgshift/internal/verify"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.imgshift.imgshift"
	AppName = "ImgShift"

	WindowWidth  = 900
	WindowHeight = 620
)

// rootCmd starts the desktop application when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "imgshift",
	Short: "Desktop client for the ImgShift image conversion service",
	Long: `ImgShift converts images between webp, jpeg, png, gif, and ico through
the hosted conversion service. Running without a subcommand opens the
desktop interface; the convert subcommand performs a single conversion
from the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		runGUI()
	},
}

func runGUI() {
	// Log version information
	fmt.Printf("ImgShift v%s starting...\n", version)

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	if err != nil {
		ui.NewConfigErrorUI(myWindow, err)
		myWindow.ShowAndRun()
		return
	}

	// Initialize services
	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadsDir()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	verifier := verify.NewClient(cfg.VerifySiteKey, cfg.VerifyURL, nil)
	convertSvc := convert.NewService(cfg.ServiceURL, cfg.VerifyAction, downloadsDir, verifier, nil)
	previews := preview.NewManager("")

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, convertSvc, verifier, previews)

	// Start the verification handshake in the background
	if verifier.State() == verify.StateLoading {
		go func() {
			if err := verifier.Load(context.Background()); err != nil {
				log.Printf("Verification handshake failed: %v", err)
			}
		}()
	}

	// Show and run
	myWindow.ShowAndRun()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
