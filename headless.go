package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imgshift/imgshift/internal/config"
	"github.com/imgshift/imgshift/internal/convert"
	"github.com/imgshift/imgshift/internal/model"
	"github.com/imgshift/imgshift/internal/platform"
	"github.com/imgshift/imgshift/internal/verify"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a single image without opening the desktop interface",
	Long: `Convert uploads one image to the conversion service and saves the result.
The verification handshake runs first; the conversion is refused when the
service does not issue a token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, _ := cmd.Flags().GetString("file")
		formatName, _ := cmd.Flags().GetString("to")
		outputName, _ := cmd.Flags().GetString("output")
		outputDir, _ := cmd.Flags().GetString("dir")
		return runHeadlessConvert(filePath, formatName, outputName, outputDir)
	},
}

func init() {
	convertCmd.Flags().String("file", "", "path of the image to convert")
	convertCmd.Flags().String("to", string(model.FormatWebP), "target format: webp, jpeg, png, gif, or ico")
	convertCmd.Flags().String("output", "", "optional name for the converted file")
	convertCmd.Flags().String("dir", "", "directory for the converted file (default: ~/Downloads)")
	_ = convertCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(convertCmd)
}

func runHeadlessConvert(filePath, formatName, outputName, outputDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	target, err := model.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir, err = platform.GetHomeDownloadsDir()
		if err != nil {
			outputDir = "."
		}
	}

	verifier := verify.NewClient(cfg.VerifySiteKey, cfg.VerifyURL, nil)
	if err := verifier.Load(context.Background()); err != nil {
		return fmt.Errorf("verification handshake failed: %w", err)
	}

	svc := convert.NewService(cfg.ServiceURL, cfg.VerifyAction, outputDir, verifier, nil)

	done := make(chan *model.ConversionTask, 1)
	svc.SetUpdateCallback(func(task *model.ConversionTask) {
		status := task.Status
		fmt.Fprintf(os.Stderr, "  %s\n", status)
		if status.IsFinished() {
			done <- task
		}
	})

	task, err := svc.Submit(convert.Request{
		SourcePath: filePath,
		Target:     target,
		OutputName: outputName,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Converting %s to %s\n", task.SourceName, task.Target)

	final := <-done
	if final.Status == model.TaskStatusError {
		return errors.New(final.LastError)
	}

	fmt.Printf("Saved %s\n", final.OutputPath)
	return nil
}
