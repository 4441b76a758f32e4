package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"depwarn/internal/config"
	"depwarn/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listPackage string
	listFile    string
	listJSON    bool
)

func init() {
	listCmd.Flags().StringVarP(&listPackage, "package", "p", "", "Only show warnings of this package")
	listCmd.Flags().StringVar(&listFile, "file", "", "Only show warnings inserted into this file (absolute path)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print records as JSON")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the deprecation warnings recorded by previous rewrites",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		filter := storage.ListFilter{PackageName: listPackage, File: listFile}
		if err := runList(cmd.Context(), cfg, filter, listJSON, os.Stdout); err != nil {
			log.Fatalf("%v", err)
		}
	},
}

var errNoInventory = errors.New("no inventory configured")

// runList prints the inventory. The database is closed before returning.
func runList(ctx context.Context, cfg *config.Config, filter storage.ListFilter, asJSON bool, w io.Writer) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: pass --db or set inventory.db in %s", errNoInventory, configPath)
	}
	defer store.Close()

	records, err := store.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to list deprecations: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []storage.Record{}
		}
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "✅ No deprecations recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range records {
		msg := "-"
		if r.Message != nil {
			msg = *r.Message
		}
		fmt.Fprintf(tw, "%s@%s\t%s:%d:%d\t%s\t%s\n",
			r.PackageName, r.PackageVersion,
			r.ScriptPath, r.ScriptLine, r.ScriptColumn,
			color.YellowString(r.FunctionName),
			msg,
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(w, "📊 %d deprecation(s)\n", len(records))
	return nil
}
