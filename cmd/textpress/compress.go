package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compressCmd = &cobra.Command{
	Use:   "compress [file]",
	Short: "Compresses a text file (or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(args, true)
	},
}

var decompressCmd = &cobra.Command{
	Use:   "decompress [file]",
	Short: "Restores a compressed file (or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(args, false)
	},
}

func init() {
	compressCmd.Flags().StringVarP(&OutputFlag, "output", "o", "", "Output file (default stdout)")
	decompressCmd.Flags().StringVarP(&OutputFlag, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(decompressCmd)
}

func runPipeline(args []string, compress bool) error {
	in, err := readInput(args)
	if err != nil {
		return fmt.Errorf("unable to read input: %w", err)
	}
	res, err := loadResources()
	if err != nil {
		return fmt.Errorf("unable to load resources: %w", err)
	}
	p, err := res.Pipeline(configuration())
	if err != nil {
		return err
	}
	var out []byte
	if compress {
		out, err = p.Compress(in)
	} else {
		out, err = p.Decompress(in)
	}
	if err != nil {
		return err
	}
	return writeOutput(out)
}
