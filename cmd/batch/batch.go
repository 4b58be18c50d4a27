// Package batch implements the batch command, which generates locators for
// every node matching a CSS selector and renders the results as a table.
package batch

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/golocator/cmd/common"
	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/locator"
	"github.com/jonesrussell/golocator/internal/logger"
)

// DefaultExpressionWidth caps the expression column width.
const DefaultExpressionWidth = 100

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate locators for every node matching a selector",
	Long: `Batch generates a locator for each node matching a CSS selector and
prints a table of the results.

Examples:
  golocator batch -f page.html -s "form input"
`,
	RunE: runBatch,
}

// Command returns the batch command for use in the root command
func Command() *cobra.Command {
	Cmd.Flags().StringP("file", "f", "", "HTML document (default: stdin)")
	Cmd.Flags().StringP("selector", "s", "", "CSS selector picking the target nodes")
	if err := Cmd.MarkFlagRequired("selector"); err != nil {
		panic(err)
	}
	return Cmd
}

// row is one generated locator in the rendered table.
type row struct {
	Tag        string
	Expression string
	Strategy   string
	Verified   bool
}

// TableRenderer handles the display of batch results in a table format
type TableRenderer struct {
	logger logger.Interface
}

// NewTableRenderer creates a new TableRenderer instance
func NewTableRenderer(log logger.Interface) *TableRenderer {
	return &TableRenderer{logger: log}
}

// RenderTable formats and displays the generated locators
func (r *TableRenderer) RenderTable(rows []row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Expression", WidthMax: DefaultExpressionWidth},
	})

	t.AppendHeader(table.Row{"Tag", "Expression", "Strategy", "Verified"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Tag, r.Expression, r.Strategy, r.Verified})
	}
	t.Render()
}

// runBatch executes the batch command.
func runBatch(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	file, _ := cmd.Flags().GetString("file")
	doc, err := common.ReadDocument(file)
	if err != nil {
		return err
	}

	selector, _ := cmd.Flags().GetString("selector")
	targets, err := dom.FindCSS(doc, selector)
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no node matches selector %q", selector)
	}

	cfg := deps.Config.GetLocatorConfig()
	opts := locator.Options{
		MaxAncestorDepth: cfg.MaxAncestorDepth,
		Timeout:          cfg.Timeout(),
	}

	rows := make([]row, 0, len(targets))
	for _, target := range targets {
		result, genErr := deps.Generator.Generate(target, opts)
		if genErr != nil {
			deps.Logger.Error("generation failed",
				"tag", dom.TagName(target), "error", genErr)
			continue
		}
		rows = append(rows, row{
			Tag:        dom.TagName(target),
			Expression: result.Expression,
			Strategy:   string(result.Strategy),
			Verified:   result.Verified,
		})
	}

	NewTableRenderer(deps.Logger).RenderTable(rows)
	return nil
}
