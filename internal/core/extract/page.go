package extract

import "time"

// Page is the browser capability the extractor and pipeline run against.
// Implementations live under internal/platform.
type Page interface {
	// Navigate loads url and returns once the document is available.
	Navigate(url string) error
	// Locate runs query against the current document. CSS is the default;
	// an "xpath=" prefix selects an XPath expression.
	Locate(query string) ([]Node, error)
	// Wait blocks for a fixed settle time.
	Wait(d time.Duration)
}

// Node is one matched element. Text may fail when the node went stale.
type Node interface {
	Text() (string, error)
}

// TextNode is a Node whose text is already known.
type TextNode string

func (n TextNode) Text() (string, error) { return string(n), nil }
