package lattice

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const tol = 1e-9

func validConfig() Config {
	return Config{
		Constant:   20,
		SideLength: 8,
		Width:      100,
		Height:     100,
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero constant", func(c *Config) { c.Constant = 0 }},
		{"negative constant", func(c *Config) { c.Constant = -5 }},
		{"zero side length", func(c *Config) { c.SideLength = 0 }},
		{"side exceeds half constant", func(c *Config) { c.SideLength = 10.5 }},
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"unknown orientation", func(c *Config) { c.Orientation = Orientation(7) }},
		{"negative margin", func(c *Config) { c.Margin = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if _, err := Generate(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("got %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGenerate_FlatTopScenario(t *testing.T) {
	// Lattice constant 20 on a 100x100 canvas: first row at y=0 with
	// x = 0,20,40,60,80; second row shifted by 10 at y = 10*sqrt(3).
	centers, err := Generate(validConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var row0, row1 []Center
	for _, c := range centers {
		switch c.Row {
		case 0:
			row0 = append(row0, c)
		case 1:
			row1 = append(row1, c)
		}
	}

	wantX0 := []float64{0, 20, 40, 60, 80}
	if len(row0) != len(wantX0) {
		t.Fatalf("row 0: got %d centers, want %d", len(row0), len(wantX0))
	}
	for i, c := range row0 {
		if math.Abs(c.X-wantX0[i]) > tol || math.Abs(c.Y) > tol {
			t.Errorf("row 0 center %d: got (%v,%v), want (%v,0)", i, c.X, c.Y, wantX0[i])
		}
		if c.Col != i {
			t.Errorf("row 0 center %d: got col %d, want %d", i, c.Col, i)
		}
	}

	wantY1 := 20 * math.Sqrt(3) / 2
	wantX1 := []float64{10, 30, 50, 70, 90}
	if len(row1) != len(wantX1) {
		t.Fatalf("row 1: got %d centers, want %d", len(row1), len(wantX1))
	}
	for i, c := range row1 {
		if math.Abs(c.X-wantX1[i]) > tol || math.Abs(c.Y-wantY1) > tol {
			t.Errorf("row 1 center %d: got (%v,%v), want (%v,%v)", i, c.X, c.Y, wantX1[i], wantY1)
		}
	}
}

func TestGenerate_RowMajorOrder(t *testing.T) {
	centers, err := Generate(validConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := 1; i < len(centers); i++ {
		prev, cur := centers[i-1], centers[i]
		if cur.Row < prev.Row || (cur.Row == prev.Row && cur.Col <= prev.Col) {
			t.Fatalf("centers out of row-major order at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestGenerate_MinPairwiseDistance(t *testing.T) {
	cfg := validConfig()
	centers, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(centers) < 2 {
		t.Fatal("expected multiple centers")
	}

	min := math.Inf(1)
	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			dx := centers[i].X - centers[j].X
			dy := centers[i].Y - centers[j].Y
			if d := math.Hypot(dx, dy); d < min {
				min = d
			}
		}
	}

	if min < cfg.Constant-tol {
		t.Errorf("minimum pairwise distance %v below lattice constant %v", min, cfg.Constant)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := validConfig()
	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical configs produced different center sequences")
	}
}

func TestGenerate_AllCentersInsideCanvas(t *testing.T) {
	for _, o := range []Orientation{FlatTop, PointyTop} {
		t.Run(o.String(), func(t *testing.T) {
			cfg := validConfig()
			cfg.Orientation = o
			cfg.Width = 137
			cfg.Height = 91
			centers, err := Generate(cfg)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			for _, c := range centers {
				if c.X < 0 || c.X >= float64(cfg.Width) || c.Y < 0 || c.Y >= float64(cfg.Height) {
					t.Fatalf("center %+v outside canvas %dx%d", c, cfg.Width, cfg.Height)
				}
			}
		})
	}
}

func TestGenerate_PointyTopStaggering(t *testing.T) {
	cfg := validConfig()
	cfg.Orientation = PointyTop
	centers, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	colStep := cfg.Constant * math.Sqrt(3) / 2
	for _, c := range centers {
		wantX := float64(c.Col) * colStep
		wantY := float64(c.Row) * cfg.Constant
		if c.Col%2 == 1 {
			wantY += cfg.Constant / 2
		}
		if math.Abs(c.X-wantX) > tol || math.Abs(c.Y-wantY) > tol {
			t.Fatalf("center %+v: want (%v,%v)", c, wantX, wantY)
		}
	}
}

func TestGenerate_PointyTopMinDistance(t *testing.T) {
	cfg := validConfig()
	cfg.Orientation = PointyTop
	centers, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := 0; i < len(centers); i++ {
		for j := i + 1; j < len(centers); j++ {
			dx := centers[i].X - centers[j].X
			dy := centers[i].Y - centers[j].Y
			if d := math.Hypot(dx, dy); d < cfg.Constant-tol {
				t.Fatalf("centers %+v and %+v are %v apart, want >= %v",
					centers[i], centers[j], d, cfg.Constant)
			}
		}
	}
}

func TestGenerate_ClipDrop(t *testing.T) {
	cfg := validConfig()
	cfg.Clip = ClipDrop
	centers, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Every surviving hexagon's bounding circle stays inside the canvas.
	for _, c := range centers {
		r := cfg.SideLength
		if c.X-r < -tol || c.Y-r < -tol ||
			c.X+r > float64(cfg.Width)+tol || c.Y+r > float64(cfg.Height)+tol {
			t.Fatalf("clipped hexagon survived ClipDrop: %+v", c)
		}
	}

	// Border centers like (0,0) must be gone.
	for _, c := range centers {
		if c.X == 0 && c.Y == 0 {
			t.Fatal("center (0,0) should have been dropped")
		}
	}

	allowed, err := Generate(validConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(centers) >= len(allowed) {
		t.Errorf("ClipDrop kept %d centers, ClipAllow %d; drop should remove some", len(centers), len(allowed))
	}
}

func TestGenerate_ClipDropMarginRelaxes(t *testing.T) {
	strict := validConfig()
	strict.Clip = ClipDrop

	relaxed := strict
	relaxed.Margin = strict.SideLength // full slack admits every center

	a, err := Generate(strict)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(relaxed)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(b) <= len(a) {
		t.Errorf("margin should admit more centers: strict=%d relaxed=%d", len(a), len(b))
	}
}

func TestParseOrientation(t *testing.T) {
	if o, err := ParseOrientation("flat"); err != nil || o != FlatTop {
		t.Errorf("flat: got %v, %v", o, err)
	}
	if o, err := ParseOrientation("pointy"); err != nil || o != PointyTop {
		t.Errorf("pointy: got %v, %v", o, err)
	}
	if _, err := ParseOrientation("diagonal"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("diagonal: got %v, want ErrInvalidConfig", err)
	}
}

func TestParseClipPolicy(t *testing.T) {
	if p, err := ParseClipPolicy("allow"); err != nil || p != ClipAllow {
		t.Errorf("allow: got %v, %v", p, err)
	}
	if p, err := ParseClipPolicy("drop"); err != nil || p != ClipDrop {
		t.Errorf("drop: got %v, %v", p, err)
	}
	if _, err := ParseClipPolicy("trim"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("trim: got %v, want ErrInvalidConfig", err)
	}
}
