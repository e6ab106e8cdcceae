// Command contenttool runs one-off bulk operations over the content JSON
// tree: extracting asset references and rewriting them from a mapping
// manifest, typically when images move to a CDN.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var contentDir string

func main() {
	root := &cobra.Command{
		Use:           "contenttool",
		Short:         "Bulk operations over the content JSON tree",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&contentDir, "content", "content", "content tree root")

	root.AddCommand(newExtractURLsCmd())
	root.AddCommand(newExtractImagesCmd())
	root.AddCommand(newReplaceURLsCmd())
	root.AddCommand(newReplaceImagesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "contenttool:", err)
		os.Exit(1)
	}
}
