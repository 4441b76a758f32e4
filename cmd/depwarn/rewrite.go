package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"depwarn/internal/config"
	"depwarn/internal/crawler"
	"depwarn/internal/git"
	"depwarn/internal/pkgroot"
	"depwarn/internal/rewrite"
	"depwarn/internal/transform"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// rewriteParams are the rewrite flags and argument.
type rewriteParams struct {
	root  string
	write bool
	out   string
	since string
}

var params rewriteParams

func init() {
	rewriteCmd.Flags().BoolVarP(&params.write, "write", "w", false, "Rewrite changed files in place")
	rewriteCmd.Flags().StringVarP(&params.out, "out", "o", "", "Write changed files under this directory, mirroring the source tree")
	rewriteCmd.Flags().StringVar(&params.since, "since", "", "Only process files changed relative to this git ref")
	rewriteCmd.MarkFlagsMutuallyExclusive("write", "out")
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [path]",
	Short: "Insert console.warn calls into @deprecated functions",
	Long: `Rewrite a file or every JavaScript file under a directory.

A single file without --write or --out is printed to stdout. A directory
without either flag is a dry run that only reports what would change.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		p := params
		p.root = cfg.Project.Root
		if len(args) > 0 {
			p.root = args[0]
		}

		if err := runRewrite(cmd.Context(), cfg, p, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("❌"), err)
			os.Exit(1)
		}
	},
}

// runRewrite transforms p.root. The inventory, when configured, is closed
// before returning.
func runRewrite(ctx context.Context, cfg *config.Config, p rewriteParams, stdout io.Writer) error {
	absRoot, err := filepath.Abs(p.root)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", p.root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p.root, err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("⚠️ Failed to close database: %v", err)
			}
		}()
	}

	transformer := transform.NewTransformer(pkgroot.NewResolver())

	// Single file to stdout: status goes to stderr to keep the output usable.
	if !info.IsDir() && !p.write && p.out == "" {
		res, err := transformer.TransformFile(ctx, absRoot)
		if err != nil {
			return err
		}
		if store != nil {
			if err := store.ReplaceFile(ctx, res.Path, res.Records); err != nil {
				return fmt.Errorf("failed to record %s: %w", res.Path, err)
			}
		}
		if _, err := stdout.Write(res.Source); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "🔍 %d deprecated call site(s) instrumented\n", len(res.Records))
		return nil
	}

	opts := rewrite.Options{
		Write:  p.write,
		OutDir: p.out,
		Store:  store,
	}

	if p.since != "" {
		dir := absRoot
		if !info.IsDir() {
			dir = filepath.Dir(absRoot)
		}
		changed, err := git.ChangedSince(dir, p.since)
		if err != nil {
			return fmt.Errorf("failed to get git changes: %w", err)
		}
		if len(changed) == 0 {
			fmt.Fprintln(stdout, "✅ No changes detected.")
			return nil
		}
		fmt.Fprintf(stdout, "📝 Detected %d changed files since %s.\n", len(changed), p.since)
		opts.Only = changed
	}

	fmt.Fprintf(stdout, "📂 Scanning: %s\n", displayPath(absRoot))

	cr := crawler.NewCrawler(cfg.Project.Extensions, cfg.Project.Ignore)
	runner := rewrite.NewRunner(cr, transformer, opts)

	report, err := runner.Run(ctx, absRoot)
	if report != nil {
		printReport(stdout, p, report)
	}
	return err
}

func printReport(w io.Writer, p rewriteParams, report *rewrite.Report) {
	verb := "would rewrite"
	switch {
	case p.write:
		verb = "rewrote"
	case p.out != "":
		verb = "wrote"
	}

	sites := 0
	for _, f := range report.Files {
		if f.Result != nil {
			sites += len(f.Result.Records)
		}
	}

	changed := report.Changed()
	for _, f := range changed {
		fmt.Fprintf(w, "  %s %s (%d warning(s))\n", color.GreenString("✏️  %s", verb), displayPath(f.Path), len(f.Result.Records))
	}

	failed := len(report.Failed())
	summary := fmt.Sprintf("📊 %d file(s) scanned, %d changed, %d deprecated function tag(s)", len(report.Files), len(changed), sites)
	if failed > 0 {
		summary += color.RedString(", %d failed", failed)
	}
	fmt.Fprintln(w, summary)

	if !p.write && p.out == "" && len(changed) > 0 {
		fmt.Fprintln(w, color.YellowString("⚠️  Dry run: pass --write or --out to save the changes."))
	}
}
