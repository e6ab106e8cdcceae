package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Manifest is the yaml mapping file driving the replace commands.
type Manifest struct {
	Mappings []Mapping `yaml:"mappings"`
}

// Mapping is one literal old-to-new replacement pair.
type Mapping struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

func newReplaceURLsCmd() *cobra.Command {
	var (
		dir      string
		manifest string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "replace-urls",
		Short: "Rewrite asset URLs in one subtree from a mapping manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(manifest)
			if err != nil {
				return err
			}
			return replaceInTrees(cmd, m, dryRun, filepath.Join(contentDir, dir))
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "collections/news", "subtree to rewrite, relative to the content root")
	cmd.Flags().StringVar(&manifest, "mapping", "url-mapping.yaml", "mapping manifest file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report replacements without writing")
	return cmd
}

func newReplaceImagesCmd() *cobra.Command {
	var (
		manifest string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "replace-images",
		Short: "Rewrite image references across pages, collections and shared content",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(manifest)
			if err != nil {
				return err
			}
			return replaceInTrees(cmd, m, dryRun,
				filepath.Join(contentDir, "pages"),
				filepath.Join(contentDir, "collections"),
				filepath.Join(contentDir, "shared"))
		},
	}
	cmd.Flags().StringVar(&manifest, "mapping", "image-mapping.yaml", "mapping manifest file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report replacements without writing")
	return cmd
}

func loadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping manifest: %w", err)
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("parse mapping manifest: %w", err)
	}
	for i, pair := range m.Mappings {
		if pair.Old == "" || pair.New == "" {
			return nil, fmt.Errorf("mapping %d: old and new must both be set", i)
		}
	}
	return m, nil
}

func replaceInTrees(cmd *cobra.Command, m *Manifest, dryRun bool, roots ...string) error {
	var files, changed, total int
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if os.IsNotExist(err) && path == root {
					return filepath.SkipAll
				}
				return err
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
				return nil
			}
			files++
			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			updated, count := applyMappings(raw, m.Mappings)
			if count == 0 {
				return nil
			}
			changed++
			total += count
			cmd.Printf("%s: %d replacements\n", path, count)
			if dryRun {
				return nil
			}
			return writeAtomic(path, updated)
		})
		if err != nil {
			return err
		}
	}
	cmd.Printf("done: %d/%d files changed, %d replacements\n", changed, files, total)
	return nil
}

// applyMappings performs literal replacement on the raw file bytes rather
// than decoding the JSON, so key order and formatting survive untouched.
func applyMappings(raw []byte, mappings []Mapping) ([]byte, int) {
	count := 0
	for _, m := range mappings {
		n := bytes.Count(raw, []byte(m.Old))
		if n == 0 {
			continue
		}
		raw = bytes.ReplaceAll(raw, []byte(m.Old), []byte(m.New))
		count += n
	}
	return raw, count
}

// writeAtomic writes via a temp file in the same directory and renames over
// the target, so a crash mid-write never leaves a truncated document.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
