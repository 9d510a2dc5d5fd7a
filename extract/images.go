package extract

import (
	"fmt"
	"math"

	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
)

// imagePlacements returns, per page, the device-space bounding box of every
// image XObject drawn by that page's content stream, in drawing order.
func imagePlacements(path string, pageCount int) ([][][4]float64, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([][][4]float64, pageCount)
	for i := 0; i < pageCount; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		boxes, err := pageImagePlacements(r, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		out[i] = boxes
	}
	return out, nil
}

// pageImagePlacements walks the content stream tracking the graphics state
// (q/Q/cm) and records the CTM-mapped unit square for each Do of an image
// XObject. An image is always drawn as the unit square under the CTM in
// effect at the Do operator.
func pageImagePlacements(r *reader.Reader, page *pages.Page) ([][4]float64, error) {
	images, err := imageXObjects(r, page)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading page contents: %w", err)
	}

	// A Contents array is a single logical stream, so the operations are
	// concatenated before the graphics-state walk.
	var ops []contentstream.Operation
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		data, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding content stream: %w", err)
		}
		parsed, err := contentstream.NewParser(data).Parse()
		if err != nil {
			return nil, fmt.Errorf("parsing content stream: %w", err)
		}
		ops = append(ops, parsed...)
	}
	return placementsFromOps(ops, images), nil
}

// placementsFromOps replays the graphics-state operators and records the
// CTM in effect at each Do of a known image name.
func placementsFromOps(ops []contentstream.Operation, images map[string]bool) [][4]float64 {
	var boxes [][4]float64
	ctm := model.Identity()
	var stack []model.Matrix

	for _, op := range ops {
		switch op.Operator {
		case "q":
			stack = append(stack, ctm)
		case "Q":
			if n := len(stack); n > 0 {
				ctm = stack[n-1]
				stack = stack[:n-1]
			}
		case "cm":
			if len(op.Operands) == 6 {
				ctm = ctm.Multiply(operandsToMatrix(op.Operands))
			}
		case "Do":
			if len(op.Operands) != 1 {
				continue
			}
			name, ok := op.Operands[0].(core.Name)
			if !ok || !images[string(name)] {
				continue
			}
			boxes = append(boxes, unitSquareBBox(ctm))
		}
	}
	return boxes
}

// imageXObjects returns the names of the page's XObjects with subtype Image.
// XObjects that fail to resolve are skipped rather than failing the page.
func imageXObjects(r *reader.Reader, page *pages.Page) (map[string]bool, error) {
	resources, err := page.Resources()
	if err != nil || resources == nil {
		return nil, nil // page has no resources
	}

	xobjObj := resources.Get("XObject")
	if xobjObj == nil {
		return nil, nil
	}
	resolved, err := r.Resolve(xobjObj)
	if err != nil {
		return nil, fmt.Errorf("resolving XObject dictionary: %w", err)
	}
	dict, ok := resolved.(core.Dict)
	if !ok {
		return nil, nil
	}

	images := make(map[string]bool)
	for name, xobj := range dict {
		res, err := r.Resolve(xobj)
		if err != nil {
			continue
		}
		stream, ok := res.(*core.Stream)
		if !ok {
			continue
		}
		subtype, ok := stream.Dict.Get("Subtype").(core.Name)
		if ok && string(subtype) == "Image" {
			images[name] = true
		}
	}
	return images, nil
}

func operandsToMatrix(operands []core.Object) model.Matrix {
	var m model.Matrix
	for i := 0; i < 6 && i < len(operands); i++ {
		m[i], _ = toFloat(operands[i])
	}
	return m
}

func toFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	}
	return 0, false
}

// unitSquareBBox maps the unit square through m and returns the normalized
// bounding box of the result.
func unitSquareBBox(m model.Matrix) [4]float64 {
	corners := [4]model.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.Transform(c)
		x0 = math.Min(x0, p.X)
		y0 = math.Min(y0, p.Y)
		x1 = math.Max(x1, p.X)
		y1 = math.Max(y1, p.Y)
	}
	return [4]float64{x0, y0, x1, y1}
}
