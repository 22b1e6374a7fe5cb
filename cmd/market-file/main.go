// Copyright (c) 2025 Neomantra Corp

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	market "github.com/allonshore/crypto-market"
	market_file "github.com/allonshore/crypto-market/internal/file"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

///////////////////////////////////////////////////////////////////////////////

var (
	verbose bool

	forceZstdInput = false // force input to be zstd, irrespective of filename suffix

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

func requireNoErrorWithoutPrint(err error) {
	if err != nil {
		os.Exit(1)
	}
}

///////////////////////////////////////////////////////////////////////////////

func main() {
	cobra.OnInitialize(func() {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(jsonPrintCmd)
	jsonPrintCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVarP(&forceZstdInput, "zstd", "z", false, "Input is zstd (useful for handling zstd on stdin)")

	err := rootCmd.Execute()
	requireNoErrorWithoutPrint(err)
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "market-file",
	Short: "market-file processes crypto-market stream files",
	Long:  "market-file processes crypto-market stream files",
}

///////////////////////////////////////////////////////////////////////////////

var jsonPrintCmd = &cobra.Command{
	Use:   "json file...",
	Short: `Prints the specified file's messages as JSON`,
	Long:  `Prints the specified file's messages as JSON`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			logger.Debug().Str("file", sourceFile).Msg("printing as json")
			if err := market_file.WriteStreamFileAsJson(sourceFile, forceZstdInput, os.Stdout); err != nil {
				logger.Error().Err(err).Str("file", sourceFile).Msg("json print failed")
			}
		}
	},
}

///////////////////////////////////////////////////////////////////////////////

var statsCmd = &cobra.Command{
	Use:   "stats file...",
	Short: `Prints per-message-type counts and byte volume for the specified files`,
	Long:  `Prints per-message-type counts and byte volume for the specified files`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, sourceFile := range args {
			if err := printStats(sourceFile, forceZstdInput); err != nil {
				logger.Error().Err(err).Str("file", sourceFile).Msg("stats failed")
			}
		}
	},
}

func printStats(sourceFile string, forceZstd bool) error {
	streamFile, streamCloser, err := market.MakeCompressedReader(sourceFile, forceZstd)
	if err != nil {
		return err
	}
	defer streamCloser.Close()

	counts := make(map[market.MessageType]int64)
	var totalMessages, totalBytes int64
	var firstMillis, lastMillis int64

	scanner := market.NewScanner(streamFile)
	for scanner.Next() {
		header, err := scanner.GetLastHeader()
		if err != nil {
			return err
		}
		counts[header.MsgType]++
		totalMessages++
		totalBytes += int64(scanner.GetLastSize())
		if firstMillis == 0 || header.Timestamp < firstMillis {
			firstMillis = header.Timestamp
		}
		if header.Timestamp > lastMillis {
			lastMillis = header.Timestamp
		}
	}
	if err := scanner.Error(); err != nil && err != io.EOF {
		return err
	}

	fmt.Printf("%s: %s messages, %s\n", sourceFile,
		humanize.Comma(totalMessages), humanize.Bytes(uint64(totalBytes)))
	if totalMessages > 0 {
		fmt.Printf("  %s .. %s\n",
			market.TimestampToTime(firstMillis).UTC().Format(time.RFC3339),
			market.TimestampToTime(lastMillis).UTC().Format(time.RFC3339))
	}
	for msgType, count := range counts {
		fmt.Printf("  %-16s %s\n", msgType.String(), humanize.Comma(count))
	}
	return nil
}
