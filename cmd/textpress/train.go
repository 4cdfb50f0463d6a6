package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/npillmayer/textpress/bytepack"
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train [sample...]",
	Short: "Builds a final Huffman table from sample texts",
	Long: `train runs the sample texts through the dictionary and n-gram stages and
	derives the static Huffman table of the last stage from the byte
	frequencies. Point resources.final_table at the result to use it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: train,
}

func init() {
	trainCmd.Flags().StringVarP(&OutputFlag, "output", "o", "", "Table file (default stdout)")
	rootCmd.AddCommand(trainCmd)
}

func train(cmd *cobra.Command, args []string) error {
	res, err := loadResources()
	if err != nil {
		return fmt.Errorf("unable to load resources: %w", err)
	}
	p, err := res.Pipeline(configuration())
	if err != nil {
		return err
	}
	samples := make([][]byte, 0, len(args))
	for _, name := range args {
		text, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("unable to read sample: %w", err)
		}
		stream, err := p.Encode(text)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		samples = append(samples, stream)
	}
	table, err := bytepack.Train(samples)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err = table.WriteTo(&buf); err != nil {
		return err
	}
	return writeOutput(buf.Bytes())
}
