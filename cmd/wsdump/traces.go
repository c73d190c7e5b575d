package main

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/simonhull/wavesurfer"
)

var (
	tracesSegment int
	tracesStart   int
	tracesEnd     int
	tracesFormat  string
)

func init() {
	tracesCmd.Flags().IntVar(&tracesSegment, "segment", 0, "Segment index to read")
	tracesCmd.Flags().IntVar(&tracesStart, "start", 0, "First frame of the window")
	tracesCmd.Flags().IntVar(&tracesEnd, "end", 0, "Frame past the end of the window (0 = last frame)")
	tracesCmd.Flags().StringVar(&tracesFormat, "format", "double", "Trace format: double, single, or raw")
}

var tracesCmd = &cobra.Command{
	Use:   "traces <file.h5>",
	Short: "Summarize a window of trace data",
	Long:  "Read a window of one segment and print per-channel min, max, and mean",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := wavesurfer.ParseFormat(tracesFormat)
		if err != nil {
			return err
		}

		rec, err := wavesurfer.Open(args[0], wavesurfer.WithFormat(format))
		if err != nil {
			return err
		}
		defer rec.Close()

		end := tracesEnd
		if end == 0 {
			end, err = rec.NumFrames(tracesSegment)
			if err != nil {
				return err
			}
		}

		traces, err := rec.Traces(tracesSegment, tracesStart, end, format != wavesurfer.FormatRaw)
		if err != nil {
			return err
		}
		rows, err := traces.Rows()
		if err != nil {
			return err
		}

		titleColor := color.New(color.FgCyan, color.Bold)
		titleColor.Printf("%s frames %d-%d (%s)\n", rec.Segments()[tracesSegment], tracesStart, end, format)

		for i, row := range rows {
			lo, hi, mean := summarize(row)
			fmt.Printf("  channel %d: min %g  max %g  mean %g\n", i, lo, hi, mean)
		}
		return nil
	},
}

// summarize computes the range and mean of one channel's samples.
func summarize(samples []float64) (lo, hi, mean float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	var sum float64
	for _, v := range samples {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	if len(samples) > 0 {
		mean = sum / float64(len(samples))
	}
	return lo, hi, mean
}
