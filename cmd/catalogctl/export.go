package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"musicstore/internal/repository"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump every collection as a fixture document",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "json or yaml")
}

func runExport(cmd *cobra.Command, args []string) error {
	stores, kv, err := openStores(cmd.Context())
	if err != nil {
		return err
	}
	defer kv.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeSeed(w, stores.Snapshot(), exportFormat)
}

func writeSeed(w io.Writer, seed repository.Seed, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(seed)
	case "yaml", "yml":
		// yaml.v3 only knows yaml tags, so go through the JSON shape to keep
		// field names and optional fields identical
		raw, err := json.Marshal(seed)
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
