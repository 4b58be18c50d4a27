package common

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/net/html"

	"github.com/jonesrussell/golocator/internal/dom"
)

// IsDebug reports whether debug mode is enabled.
func IsDebug() bool {
	return viper.GetBool("logger.development")
}

// ReadDocument parses an HTML document from a file, or from stdin when path
// is "-" or empty.
func ReadDocument(path string) (*html.Node, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
