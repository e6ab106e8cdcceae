package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// keyedImagePatterns match image references stored under well-known JSON
// keys, regardless of path prefix.
var keyedImagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"image"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"featuredImage"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"ogImage"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"logo"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`"icon"\s*:\s*"([^"]+)"`),
}

func newExtractURLsCmd() *cobra.Command {
	var (
		dir    string
		prefix string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "extract-urls",
		Short: "List unique asset URLs with a given prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `[^"'\s]+`)
			urls, scanned, err := scanTree(filepath.Join(contentDir, dir), func(raw []byte) []string {
				return re.FindAllString(string(raw), -1)
			})
			if err != nil {
				return err
			}
			for _, u := range urls {
				cmd.Println(u)
			}
			cmd.Printf("scanned %d files, %d unique URLs\n", scanned, len(urls))
			if out != "" {
				return writeManifestSkeleton(out, urls)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "collections/news", "subtree to scan, relative to the content root")
	cmd.Flags().StringVar(&prefix, "prefix", "/images/news/", "URL prefix to extract")
	cmd.Flags().StringVar(&out, "out", "", "write a mapping manifest skeleton to this file")
	return cmd
}

func newExtractImagesCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "extract-images",
		Short: "List every image reference across pages, collections and shared content",
		RunE: func(cmd *cobra.Command, args []string) error {
			re := regexp.MustCompile(`/images/[^"'\s]+`)
			seen := map[string]bool{}
			var scanned int
			for _, sub := range []string{"pages", "collections", "shared"} {
				urls, n, err := scanTree(filepath.Join(contentDir, sub), func(raw []byte) []string {
					found := re.FindAllString(string(raw), -1)
					for _, p := range keyedImagePatterns {
						for _, m := range p.FindAllStringSubmatch(string(raw), -1) {
							found = append(found, m[1])
						}
					}
					return found
				})
				if err != nil {
					return err
				}
				scanned += n
				for _, u := range urls {
					seen[u] = true
				}
			}
			urls := make([]string, 0, len(seen))
			for u := range seen {
				urls = append(urls, u)
			}
			sort.Strings(urls)
			for _, u := range urls {
				cmd.Println(u)
			}
			cmd.Printf("scanned %d files, %d unique image references\n", scanned, len(urls))
			if out != "" {
				return writeManifestSkeleton(out, urls)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write a mapping manifest skeleton to this file")
	return cmd
}

// scanTree walks every .json file under root, applies extract, and returns
// the sorted unique matches. A missing subtree is not an error.
func scanTree(root string, extract func([]byte) []string) ([]string, int, error) {
	seen := map[string]bool{}
	scanned := 0
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
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		scanned++
		for _, m := range extract(raw) {
			seen[m] = true
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, scanned, nil
}

// writeManifestSkeleton emits a mapping manifest with every extracted URL as
// an old value and an empty new value, ready to be filled in and fed to the
// replace commands.
func writeManifestSkeleton(path string, urls []string) error {
	m := Manifest{Mappings: make([]Mapping, len(urls))}
	for i, u := range urls {
		m.Mappings[i] = Mapping{Old: u}
	}
	raw, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	return writeAtomic(path, raw)
}
