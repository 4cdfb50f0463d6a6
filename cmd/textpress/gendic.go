package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/npillmayer/textpress"
	"github.com/npillmayer/textpress/ngramfile"
	"github.com/npillmayer/textpress/wordlist"
	"github.com/spf13/cobra"
)

var gendicCmd = &cobra.Command{
	Use:   "gendic [source]",
	Short: "Builds an n-gram table from an n-gram source list",
	Long: `gendic reads phrases with counts, one per line and most frequent first, as in

	"can 't stop the",1234

	normalizes them, encodes each phrase with the configured word list and writes
	the n-gram table. Phrases containing words missing from the word list are
	skipped, as are repeated phrases.`,
	Args: cobra.ExactArgs(1),
	RunE: gendic,
}

func init() {
	gendicCmd.Flags().StringVarP(&OutputFlag, "output", "o", "", "N-gram table file (default stdout)")
	rootCmd.AddCommand(gendicCmd)
}

func gendic(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("unable to read n-gram source: %w", err)
	}
	layout, err := textpress.LayoutFromConfig(configuration())
	if err != nil {
		return err
	}
	words, err := os.Open(cfg.Resources.WordList)
	if err != nil {
		return fmt.Errorf("unable to open word list: %w", err)
	}
	defer words.Close()
	dict, err := wordlist.LoadDictionary(cfg.Resources.WordList, words, layout)
	if err != nil {
		return err
	}
	p, err := textpress.NewPipeline(dict, nil, textpress.WithLayout(layout))
	if err != nil {
		return err
	}
	var table bytes.Buffer
	w := ngramfile.NewWriter(&table)
	seen := make(map[string]bool)
	capacity := int(layout.NgramCapacity())
	skipped := 0
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() && w.Rows() < capacity {
		phrase, ok := ngramfile.NormalizeLine(scanner.Text())
		if !ok {
			continue
		}
		span := p.EncodeNgram(phrase)
		if len(span) == 0 || seen[string(span)] {
			skipped++
			continue
		}
		seen[string(span)] = true
		if err = w.Write(span); err != nil {
			return err
		}
	}
	if err = scanner.Err(); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d n-grams, skipped %d\n", w.Rows(), skipped)
	return writeOutput(table.Bytes())
}
