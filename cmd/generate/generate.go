// Package generate implements the generate command, which synthesizes a
// locator expression for one node in an HTML document.
package generate

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/cmd/common"
	"github.com/jonesrussell/golocator/internal/dom"
	"github.com/jonesrussell/golocator/internal/locator"
	"github.com/jonesrussell/golocator/internal/query"
)

// Error constants
const (
	ErrTargetRequired = "exactly one of --selector or --xpath must be set"
	ErrTargetNotFound = "no node matches the given target"
)

// Cmd represents the generate command.
var Cmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a locator for one node",
	Long: `Generate synthesizes a robust XPath locator for a single node in an
HTML document. The target node is picked by CSS selector or by XPath.

Examples:
  # Generate a locator for the first matching node
  golocator generate -f page.html -s "#checkout .total"

  # Pick the target with an XPath expression, reading the page from stdin
  cat page.html | golocator generate -x "//dd[3]"
`,
	RunE: runGenerate,
}

// Command returns the generate command for use in the root command
func Command() *cobra.Command {
	Cmd.Flags().StringP("file", "f", "", "HTML document (default: stdin)")
	Cmd.Flags().StringP("selector", "s", "", "CSS selector picking the target node")
	Cmd.Flags().StringP("xpath", "x", "", "XPath expression picking the target node")
	Cmd.Flags().Int("depth", 0, "max ancestor depth (default: from config)")
	Cmd.Flags().Int("timeout-ms", 0, "generation timeout in ms (default: from config)")
	return Cmd
}

// runGenerate executes the generate command.
func runGenerate(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	file, _ := cmd.Flags().GetString("file")
	doc, err := common.ReadDocument(file)
	if err != nil {
		return err
	}

	target, err := findTarget(cmd, deps, doc)
	if err != nil {
		return err
	}

	result, err := deps.Generator.Generate(target, optionsFromFlags(cmd, deps))
	if err != nil {
		return fmt.Errorf("generate locator: %w", err)
	}

	fmt.Println(result.Expression)
	if !result.Verified {
		deps.Logger.Warn("expression is best-effort and did not validate as unique",
			"strategy", string(result.Strategy))
	}
	deps.Logger.Info("locator generated",
		"strategy", string(result.Strategy), "verified", result.Verified)
	return nil
}

// findTarget resolves the target node from the --selector or --xpath flag.
func findTarget(cmd *cobra.Command, deps *common.CommandDeps, doc *html.Node) (*html.Node, error) {
	selector, _ := cmd.Flags().GetString("selector")
	xpathExpr, _ := cmd.Flags().GetString("xpath")
	if (selector == "") == (xpathExpr == "") {
		return nil, fmt.Errorf("%s", ErrTargetRequired)
	}

	var target *html.Node
	var err error
	if selector != "" {
		target, err = dom.FirstCSS(doc, selector)
	} else {
		target, err = query.Locate(deps.Evaluator, xpathExpr, doc)
	}
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, fmt.Errorf("%s", ErrTargetNotFound)
	}
	return target, nil
}

// optionsFromFlags builds generation options from config with flag overrides.
func optionsFromFlags(cmd *cobra.Command, deps *common.CommandDeps) locator.Options {
	cfg := deps.Config.GetLocatorConfig()
	opts := locator.Options{
		MaxAncestorDepth: cfg.MaxAncestorDepth,
		Timeout:          cfg.Timeout(),
	}
	if depth, _ := cmd.Flags().GetInt("depth"); depth > 0 {
		opts.MaxAncestorDepth = depth
	}
	if timeoutMs, _ := cmd.Flags().GetInt("timeout-ms"); timeoutMs > 0 {
		opts.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}
	return opts
}
