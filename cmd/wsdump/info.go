package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/simonhull/wavesurfer"
)

var infoShowHeader bool

func init() {
	infoCmd.Flags().BoolVar(&infoShowHeader, "header", false, "Also list the top-level header fields")
}

var infoCmd = &cobra.Command{
	Use:   "info <file.h5>",
	Short: "Show recording metadata",
	Long:  "Open a WaveSurfer data file and print its version, channel count, segments, and any warnings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := wavesurfer.Open(args[0])
		if err != nil {
			return err
		}
		defer rec.Close()

		titleColor := color.New(color.FgCyan, color.Bold)

		titleColor.Print("File: ")
		fmt.Println(rec.Path)

		version := rec.FileVersion()
		if version == "" {
			version = "(not recorded)"
		}
		titleColor.Print("WaveSurfer version: ")
		fmt.Println(version)

		titleColor.Print("Analog channels: ")
		fmt.Println(rec.NumChannels())

		segments := rec.Segments()
		titleColor.Printf("Segments (%d):\n", len(segments))
		for i, name := range segments {
			frames, err := rec.NumFrames(i)
			if err != nil {
				return err
			}
			fmt.Printf("  %-16s %d frames\n", name, frames)
		}

		if len(rec.Warnings) > 0 {
			warnColor := color.New(color.FgYellow, color.Bold)
			warnColor.Printf("Warnings (%d):\n", len(rec.Warnings))
			for _, w := range rec.Warnings {
				fmt.Printf("  %s\n", w)
			}
		}

		if infoShowHeader {
			titleColor.Println("Header fields:")
			header := rec.Header()
			keys := make([]string, 0, len(header))
			for k := range header {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				fmt.Printf("  %-28s %s\n", k, describeValue(header[k]))
			}
		}

		return nil
	},
}

// describeValue renders a one-line summary of a metadata tree node.
func describeValue(v wavesurfer.Value) string {
	switch v := v.(type) {
	case wavesurfer.Map:
		return fmt.Sprintf("group (%d fields)", len(v))
	case *wavesurfer.Scalar:
		return v.String()
	case *wavesurfer.Array:
		return v.String()
	}
	return "?"
}
