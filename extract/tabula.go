package extract

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
)

// TabulaBackend is the default backend. It delegates document parsing and
// layout analysis to tsawler/tabula and reshapes the resulting element list
// into pages of text and image blocks.
type TabulaBackend struct{}

func (b *TabulaBackend) Name() string { return "tabula" }

func (b *TabulaBackend) Extract(ctx context.Context, path string) (*Structure, error) {
	doc, err := tabula.AnalyzeDocument(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	// Layout elements carry no image placements, so those come from a
	// separate walk over each page's content stream.
	placements, err := imagePlacements(path, len(doc.Pages))
	if err != nil {
		return nil, fmt.Errorf("locating images: %w", err)
	}

	pages := make([]Page, 0, len(doc.Pages))
	for i, mp := range doc.Pages {
		page := newPage(mp.Number, mp.Width, mp.Height)

		// The element order reported by the library is authoritative.
		// Every raw entry consumes an index, including the ones we skip,
		// so ids stay aligned with the library's block list.
		idx := 0
		for _, el := range mp.Elements {
			switch el.Type() {
			case model.ElementTypeParagraph, model.ElementTypeHeading,
				model.ElementTypeList, model.ElementTypeCaption:
				te, ok := el.(model.TextElement)
				if !ok {
					idx++
					continue
				}
				content := strings.TrimSpace(te.GetText())
				if content != "" {
					page.Blocks = append(page.Blocks, Block{
						ID:        blockID(mp.Number, idx),
						Type:      BlockText,
						BBox:      elementBBox(el.BoundingBox()),
						PageIndex: mp.Number,
						Content:   content,
					})
				}
			case model.ElementTypeImage, model.ElementTypeFigure:
				page.Blocks = append(page.Blocks, Block{
					ID:        blockID(mp.Number, idx),
					Type:      BlockImage,
					BBox:      elementBBox(el.BoundingBox()),
					PageIndex: mp.Number,
				})
			}
			idx++
		}
		for _, bbox := range placements[i] {
			page.Blocks = append(page.Blocks, Block{
				ID:        blockID(mp.Number, idx),
				Type:      BlockImage,
				BBox:      bbox,
				PageIndex: mp.Number,
			})
			idx++
		}

		pages = append(pages, page)
	}

	return &Structure{PageCount: len(pages), Pages: pages}, nil
}

// elementBBox converts the library's x/y/width/height box into the
// x0,y0,x1,y1 wire form, normalized so x0 <= x1 and y0 <= y1.
func elementBBox(b model.BBox) [4]float64 {
	return [4]float64{
		math.Min(b.Left(), b.Right()),
		math.Min(b.Bottom(), b.Top()),
		math.Max(b.Left(), b.Right()),
		math.Max(b.Bottom(), b.Top()),
	}
}
