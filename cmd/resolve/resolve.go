// Package resolve implements the resolve command, which re-resolves a
// previously generated locator against a document.
package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/golocator/cmd/common"
	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/query"
)

// maxTextPreview bounds the printed text snippet.
const maxTextPreview = 120

// Cmd represents the resolve command.
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a locator against a document",
	Long: `Resolve evaluates a locator expression against an HTML document and
prints the first matching node.

Examples:
  golocator resolve -f page.html -e '//li[@data-testid="item-target"]'
`,
	RunE: runResolve,
}

// Command returns the resolve command for use in the root command
func Command() *cobra.Command {
	Cmd.Flags().StringP("file", "f", "", "HTML document (default: stdin)")
	Cmd.Flags().StringP("expression", "e", "", "locator expression to resolve")
	if err := Cmd.MarkFlagRequired("expression"); err != nil {
		panic(err)
	}
	return Cmd
}

// runResolve executes the resolve command.
func runResolve(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	file, _ := cmd.Flags().GetString("file")
	doc, err := common.ReadDocument(file)
	if err != nil {
		return err
	}

	expression, _ := cmd.Flags().GetString("expression")
	node, err := query.Locate(deps.Evaluator, expression, doc)
	if err != nil {
		return fmt.Errorf("resolve locator: %w", err)
	}
	if node == nil {
		fmt.Println("no match")
		return nil
	}

	text := dom.TruncateText(dom.Text(node), maxTextPreview)
	fmt.Printf("tag: %s\n", dom.TagName(node))
	if id := dom.ID(node); id != "" {
		fmt.Printf("id: %s\n", id)
	}
	if text != "" {
		fmt.Printf("text: %s\n", text)
	}
	return nil
}
