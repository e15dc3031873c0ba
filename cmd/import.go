package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/logger"
)

var (
	importInclude string
	importExclude string
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import markdown transcript files from a directory",
	Long: `Imports local markdown transcripts as lifelogs. Each file becomes one
lifelog: the first heading (or the file name) is the title and the file
modification time stands in for the recording time. Useful for corpora
exported from other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := args[0]

		log := logger.Must(verbose)
		defer log.Sync()

		a, err := loadApp(log)
		if err != nil {
			return err
		}
		defer a.close()

		matches, err := doublestar.FilepathGlob(filepath.Join(root, importInclude))
		if err != nil {
			return fmt.Errorf("bad include pattern %q: %w", importInclude, err)
		}

		var files []string
		for _, m := range matches {
			if importExclude != "" {
				rel, _ := filepath.Rel(root, m)
				if ok, _ := doublestar.Match(importExclude, rel); ok {
					continue
				}
			}
			files = append(files, m)
		}
		if len(files) == 0 {
			fmt.Println("No matching files found.")
			return nil
		}

		bar := progressbar.Default(int64(len(files)), "importing")
		imported := 0
		for _, path := range files {
			if err := importFile(cmd, a, root, path); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nSkipping %s: %v\n", path, err)
			} else {
				imported++
			}
			_ = bar.Add(1)
		}

		if err := a.rebuildIndex(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("\nImported %d of %d file(s) and rebuilt the index.\n", imported, len(files))
		return nil
	},
}

func importFile(cmd *cobra.Command, a *app, root, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	id := "import:" + strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")

	markdown := string(data)
	title := firstHeading(markdown)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return a.store.Put(cmd.Context(), &lifelog.Lifelog{
		ID:        id,
		Title:     title,
		Markdown:  markdown,
		StartTime: info.ModTime(),
		EndTime:   info.ModTime(),
	})
}

// firstHeading returns the text of the first markdown heading, if any.
func firstHeading(markdown string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}

func init() {
	importCmd.Flags().StringVar(&importInclude, "include", "**/*.md", "glob pattern of files to import, relative to <dir>")
	importCmd.Flags().StringVar(&importExclude, "exclude", "", "glob pattern of files to skip")
	rootCmd.AddCommand(importCmd)
}
