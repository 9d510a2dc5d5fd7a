package extract

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// lineTolerance is the baseline jitter (in points) still considered
	// the same line.
	lineTolerance = 2.0
	// blockGapFactor times the line's font size is the largest vertical
	// gap that keeps two lines in the same block.
	blockGapFactor = 1.8
)

// BasicBackend extracts text blocks with ledongthuc/pdf. Positioned text
// runs are grouped into lines and blocks in content-stream order. It has no
// access to image placements, so it reports text blocks only.
type BasicBackend struct{}

func (b *BasicBackend) Name() string { return "basic" }

func (b *BasicBackend) Extract(ctx context.Context, path string) (structure *Structure, err error) {
	// The pdf package panics on some malformed documents; fold that into
	// the normal error path so a bad file is a 500, not a crash.
	defer func() {
		if rec := recover(); rec != nil {
			structure = nil
			err = fmt.Errorf("reading PDF: %v", rec)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]Page, 0, total)

	for i := 1; i <= total; i++ {
		p := r.Page(i)
		width, height := mediaBoxSize(p)
		page := newPage(i, width, height)

		if !p.V.IsNull() {
			idx := 0
			for _, blk := range groupLines(splitLines(p.Content().Text)) {
				content := strings.TrimSpace(strings.Join(blk.lines, "\n"))
				if content == "" {
					idx++
					continue
				}
				page.Blocks = append(page.Blocks, Block{
					ID:        blockID(i, idx),
					Type:      BlockText,
					BBox:      [4]float64{blk.x0, blk.y0, blk.x1, blk.y1},
					PageIndex: i,
					Content:   content,
				})
				idx++
			}
		}

		pages = append(pages, page)
	}

	return &Structure{PageCount: len(pages), Pages: pages}, nil
}

// textLine is a run of text sharing one baseline.
type textLine struct {
	text           string
	y              float64 // baseline
	font           float64 // largest font size on the line
	x0, y0, x1, y1 float64
}

// runBlock is a group of adjacent lines.
type runBlock struct {
	lines          []string
	x0, y0, x1, y1 float64
}

// splitLines groups positioned text runs into lines. Runs stay in
// content-stream order; a new line starts whenever the baseline moves by
// more than lineTolerance.
func splitLines(runs []pdf.Text) []textLine {
	var lines []textLine
	var cur *textLine
	var sb strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.text = sb.String()
		lines = append(lines, *cur)
		cur = nil
		sb.Reset()
	}

	for _, t := range runs {
		if t.S == "" {
			continue
		}
		if cur == nil || math.Abs(t.Y-cur.y) > lineTolerance {
			flush()
			cur = &textLine{
				y: t.Y, font: t.FontSize,
				x0: t.X, y0: t.Y, x1: t.X + t.W, y1: t.Y + t.FontSize,
			}
		}
		sb.WriteString(t.S)
		cur.font = math.Max(cur.font, t.FontSize)
		cur.x0 = math.Min(cur.x0, t.X)
		cur.x1 = math.Max(cur.x1, t.X+t.W)
		cur.y0 = math.Min(cur.y0, t.Y)
		cur.y1 = math.Max(cur.y1, t.Y+t.FontSize)
	}
	flush()
	return lines
}

// groupLines merges consecutive lines into blocks while the baseline gap
// stays within blockGapFactor of the larger line's font size.
func groupLines(lines []textLine) []runBlock {
	var blocks []runBlock
	var cur *runBlock
	var prev textLine

	for _, ln := range lines {
		gap := math.Abs(prev.y - ln.y)
		if cur == nil || gap > blockGapFactor*math.Max(prev.font, ln.font) {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			cur = &runBlock{
				lines: []string{ln.text},
				x0:    ln.x0, y0: ln.y0, x1: ln.x1, y1: ln.y1,
			}
		} else {
			cur.lines = append(cur.lines, ln.text)
			cur.x0 = math.Min(cur.x0, ln.x0)
			cur.y0 = math.Min(cur.y0, ln.y0)
			cur.x1 = math.Max(cur.x1, ln.x1)
			cur.y1 = math.Max(cur.y1, ln.y1)
		}
		prev = ln
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

// mediaBoxSize resolves the page's MediaBox, walking up the page tree for
// inherited values. Returns zero dimensions if no MediaBox is found.
func mediaBoxSize(p pdf.Page) (float64, float64) {
	v := p.V
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		mb := v.Key("MediaBox")
		if !mb.IsNull() && mb.Len() == 4 {
			w := math.Abs(mb.Index(2).Float64() - mb.Index(0).Float64())
			h := math.Abs(mb.Index(3).Float64() - mb.Index(1).Float64())
			return w, h
		}
		v = v.Key("Parent")
	}
	return 0, 0
}
