package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/partition"
	"reviewlens/internal/ui"
)

var (
	splitChunks        int
	splitLinesPerChunk int
	splitOutputDir     string
	splitPrefix        string
)

var splitCmd = &cobra.Command{
	Use:   "split [source]",
	Short: "Partition a newline-delimited JSON file into chunk files",
	Long: `Split a large newline-delimited JSON file into smaller chunk files so a
warehouse can bulk-load them in parallel, one worker per file.

Records are never split across files and never parsed: chunk boundaries fall
only on line boundaries, and concatenating the chunk files in index order
reproduces the source exactly. The source is streamed a line at a time, so
memory stays bounded regardless of file size.

With --lines-per-chunk, chunks are cut in a single pass and the last file
absorbs the remainder. With --chunks, the record total is counted first and
spread evenly, earlier chunks taking one extra record each.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitChunks, "chunks", "n", 0, "Number of output chunks (even distribution)")
	splitCmd.Flags().IntVarP(&splitLinesPerChunk, "lines-per-chunk", "l", 0, "Records per chunk (single pass, overrides --chunks)")
	splitCmd.Flags().StringVarP(&splitOutputDir, "out", "o", "", "Output directory for chunk files")
	splitCmd.Flags().StringVarP(&splitPrefix, "prefix", "p", "", "Chunk file name prefix")
}

func runSplit(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags win; the config file supplies defaults
	opts := partition.Options{
		SourcePath:    appConfig.Dataset.SourcePath,
		OutputDir:     appConfig.Dataset.OutputDir,
		Prefix:        appConfig.Dataset.Prefix,
		ChunkCount:    appConfig.Dataset.ChunkCount,
		LinesPerChunk: appConfig.Dataset.LinesPerChunk,
	}
	if len(args) > 0 {
		opts.SourcePath = args[0]
	}
	if cmd.Flags().Changed("chunks") {
		opts.ChunkCount = splitChunks
	}
	if cmd.Flags().Changed("lines-per-chunk") {
		opts.LinesPerChunk = splitLinesPerChunk
	}
	if splitOutputDir != "" {
		opts.OutputDir = splitOutputDir
	}
	if splitPrefix != "" {
		opts.Prefix = splitPrefix
	}
	if opts.Prefix == "" {
		opts.Prefix = "chunk"
	}

	ui.ShowHeader("ReviewLens - Split")
	ui.ShowInfo(fmt.Sprintf("Source: %s", opts.SourcePath))

	result, err := partition.Split(opts)
	if err != nil {
		return err
	}

	if len(result.Chunks) == 0 {
		ui.ShowWarning("Source file contains no records; nothing written")
		return nil
	}

	for _, chunk := range result.Chunks {
		fmt.Printf("  %s  %d record(s)  %s\n", chunk.Path, chunk.Lines, ui.FormatBytes(chunk.Bytes))
	}

	ui.ShowSuccess(fmt.Sprintf("Wrote %d chunk(s), %d record(s), %s in %s",
		len(result.Chunks),
		result.TotalLines,
		ui.FormatBytes(result.TotalBytes),
		result.Duration.Round(time.Millisecond),
	))
	return nil
}
