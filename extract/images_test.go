package extract

import (
	"testing"

	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/model"
)

func TestPlacementsFromOps(t *testing.T) {
	// The usual image idiom: q cm Do Q. The cm scales the unit square to
	// 50x80 and moves it to (100, 200).
	ops := []contentstream.Operation{
		{Operator: "q"},
		{Operator: "cm", Operands: []core.Object{
			core.Int(50), core.Int(0), core.Int(0), core.Int(80),
			core.Int(100), core.Int(200),
		}},
		{Operator: "Do", Operands: []core.Object{core.Name("Im1")}},
		{Operator: "Q"},
		// A form XObject is not an image and must be ignored.
		{Operator: "Do", Operands: []core.Object{core.Name("Fm1")}},
	}
	images := map[string]bool{"Im1": true}

	boxes := placementsFromOps(ops, images)
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1: %v", len(boxes), boxes)
	}
	want := [4]float64{100, 200, 150, 280}
	if boxes[0] != want {
		t.Errorf("bbox = %v, want %v", boxes[0], want)
	}
}

func TestPlacementsFromOpsStateRestore(t *testing.T) {
	// The Q after the first image must restore the CTM, so the second
	// image is placed by its own cm only.
	ops := []contentstream.Operation{
		{Operator: "q"},
		{Operator: "cm", Operands: []core.Object{
			core.Real(10), core.Int(0), core.Int(0), core.Real(10),
			core.Int(0), core.Int(0),
		}},
		{Operator: "Do", Operands: []core.Object{core.Name("Im1")}},
		{Operator: "Q"},
		{Operator: "q"},
		{Operator: "cm", Operands: []core.Object{
			core.Int(20), core.Int(0), core.Int(0), core.Int(20),
			core.Int(5), core.Int(5),
		}},
		{Operator: "Do", Operands: []core.Object{core.Name("Im2")}},
		{Operator: "Q"},
	}
	images := map[string]bool{"Im1": true, "Im2": true}

	boxes := placementsFromOps(ops, images)
	if len(boxes) != 2 {
		t.Fatalf("got %d boxes, want 2: %v", len(boxes), boxes)
	}
	if want := ([4]float64{0, 0, 10, 10}); boxes[0] != want {
		t.Errorf("first bbox = %v, want %v", boxes[0], want)
	}
	if want := ([4]float64{5, 5, 25, 25}); boxes[1] != want {
		t.Errorf("second bbox = %v, want %v", boxes[1], want)
	}
}

func TestPlacementsFromOpsNoImages(t *testing.T) {
	ops := []contentstream.Operation{
		{Operator: "cm", Operands: []core.Object{
			core.Int(1), core.Int(0), core.Int(0), core.Int(1),
			core.Int(0), core.Int(0),
		}},
		{Operator: "Do", Operands: []core.Object{core.Name("Fm1")}},
	}
	if boxes := placementsFromOps(ops, nil); len(boxes) != 0 {
		t.Errorf("got %v, want none", boxes)
	}
}

func TestUnitSquareBBoxNormalized(t *testing.T) {
	// A flip (negative vertical scale) still yields an ordered bbox.
	m := model.Matrix{50, 0, 0, -80, 100, 480}
	got := unitSquareBBox(m)
	want := [4]float64{100, 400, 150, 480}
	if got != want {
		t.Errorf("bbox = %v, want %v", got, want)
	}
}

func TestToFloat(t *testing.T) {
	if v, ok := toFloat(core.Int(7)); !ok || v != 7 {
		t.Errorf("toFloat(Int 7) = %v, %v", v, ok)
	}
	if v, ok := toFloat(core.Real(2.5)); !ok || v != 2.5 {
		t.Errorf("toFloat(Real 2.5) = %v, %v", v, ok)
	}
	if _, ok := toFloat(core.Name("x")); ok {
		t.Error("toFloat(Name) should not convert")
	}
}
