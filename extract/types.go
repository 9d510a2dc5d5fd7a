package extract

import "fmt"

// Structure is the full layout description of a document, in document order.
type Structure struct {
	PageCount int    `json:"pageCount"`
	Pages     []Page `json:"pages"`
}

// Page describes one page and its layout blocks. PageIndex is 1-based.
type Page struct {
	PageIndex int     `json:"pageIndex"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Blocks    []Block `json:"blocks"`
}

// Block is a single layout unit on a page. Type is "text" or "image";
// Content is set only for text blocks, which is why it is omitempty.
type Block struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	BBox      [4]float64 `json:"bbox"`
	PageIndex int        `json:"pageIndex"`
	Content   string     `json:"content,omitempty"`
}

const (
	// BlockText marks a block carrying extracted text content.
	BlockText = "text"
	// BlockImage marks a placed image; image blocks never carry content.
	BlockImage = "image"
)

// blockID derives the identifier for a block from its 1-based page number
// and its zero-based position in the page's raw block list. Skipped blocks
// still consume an index, so ids are stable for a given file but not
// globally unique across runs if the underlying block order changes.
func blockID(pageNumber, index int) string {
	return fmt.Sprintf("el_%d_%d", pageNumber, index)
}

// newPage returns a page with an allocated (non-nil) block slice so that
// blank pages serialize as an empty JSON array rather than null.
func newPage(pageNumber int, width, height float64) Page {
	return Page{
		PageIndex: pageNumber,
		Width:     width,
		Height:    height,
		Blocks:    []Block{},
	}
}
