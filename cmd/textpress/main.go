// Command textpress compresses English text with a static word list and
// n-gram table.
//
// Commands:
//
//	compress:   compresses a text file
//	decompress: restores a compressed file
//	gendic:     builds an n-gram table from an n-gram source list
//	train:      builds a final Huffman table from sample texts
//
// Resources and options are read from textpress.yaml (see internal/config);
// every option may be overridden with a TEXTPRESS_ environment variable.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textpress/internal/config"
	"github.com/npillmayer/textpress/resources"
	"github.com/spf13/cobra"
)

var (
	ConfigFlag   string
	LogLevelFlag string
	OutputFlag   string
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "textpress",
	Short: "Dictionary-driven compressor for English text",
	Long: `textpress maps words onto 1 to 3 byte codes from a frequency-ranked word list,
	replaces frequent phrases with n-gram codes and packs the result with a
	Burrows-Wheeler transform and a static Huffman code.

	Decompressed text is lowercased and re-capitalized, and spacing around
	punctuation is normalized.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&ConfigFlag, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&LogLevelFlag, "log-level", "", "Trace level: Debug, Info or Error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and installs the logrus tracer.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(ConfigFlag); err != nil {
		return err
	}
	if LogLevelFlag != "" {
		cfg.LogLevel = LogLevelFlag
	}
	for key, level := range cfg.TraceLevels() {
		config.Set(key, level)
	}
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), true)
	if err = trace2go.ConfigureRoot(configuration(), "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

func configuration() schuko.Configuration {
	return config.Schuko()
}

// loadResources loads the resources named in the configuration.
func loadResources() (*resources.Resources, error) {
	return resources.Load(configuration())
}

// readInput reads the file named by args[0], or stdin if there is none.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// writeOutput writes data to the file named by the output flag, or stdout.
func writeOutput(data []byte) error {
	if OutputFlag == "" || OutputFlag == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(OutputFlag, data, 0o644)
}
