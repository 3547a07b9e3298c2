package region

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Rect
		wantErr bool
	}{
		{name: "plain", in: "10,20,300,400", want: Rect{X: 10, Y: 20, W: 300, H: 400}},
		{name: "whitespace", in: " 10 , 20,300 , 400 ", want: Rect{X: 10, Y: 20, W: 300, H: 400}},
		{name: "negative offsets", in: "-1920,-5,100,100", want: Rect{X: -1920, Y: -5, W: 100, H: 100}},
		{name: "three values", in: "1,2,3", wantErr: true},
		{name: "five values", in: "1,2,3,4,5", wantErr: true},
		{name: "non numeric", in: "a,2,3,4", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "empty token", in: "1,,3,4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %+v", tt.in, got)
				}
				if !errors.Is(err, ErrParse) {
					t.Fatalf("Expected ErrParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestMonitorContainsIsHalfOpen(t *testing.T) {
	m := Monitor{X: 100, Y: 50, W: 200, H: 100}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"left edge", 100, 80, true},
		{"top edge", 150, 50, true},
		{"top left corner", 100, 50, true},
		{"right edge", 300, 80, false},
		{"bottom edge", 150, 150, false},
		{"last pixel", 299, 149, true},
		{"left of monitor", 99, 80, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Contains(tt.x, tt.y); got != tt.want {
				t.Fatalf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFindOwnerSharedEdge(t *testing.T) {
	left := Monitor{Name: "DP-1", X: 0, Y: 0, W: 1920, H: 1080}
	right := Monitor{Name: "DP-2", X: 1920, Y: 0, W: 1920, H: 1080}
	monitors := []Monitor{left, right}

	// center lands exactly on x=1920
	owner, ok := FindOwner(Rect{X: 1820, Y: 100, W: 200, H: 200}, monitors)
	if !ok {
		t.Fatal("Expected an owner")
	}
	if owner.Name != "DP-2" {
		t.Fatalf("Expected DP-2 to own the shared edge, got %s", owner.Name)
	}

	if _, ok := FindOwner(Rect{X: 5000, Y: 0, W: 10, H: 10}, monitors); ok {
		t.Fatal("Expected no owner for off-screen selection")
	}
}

func TestFindOwnerFirstMatchWins(t *testing.T) {
	a := Monitor{Name: "a", X: 0, Y: 0, W: 1000, H: 1000}
	b := Monitor{Name: "b", X: 0, Y: 0, W: 1000, H: 1000}
	owner, ok := FindOwner(Rect{X: 10, Y: 10, W: 10, H: 10}, []Monitor{a, b})
	if !ok || owner.Name != "a" {
		t.Fatalf("Expected first overlapping monitor, got %+v ok=%v", owner, ok)
	}
}

func TestClamp(t *testing.T) {
	bounds := Monitor{X: 0, Y: 0, W: 200, H: 200}

	tests := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside unchanged", Rect{10, 10, 50, 50}, Rect{10, 10, 50, 50}},
		{"top left overflow", Rect{-10, -10, 100, 100}, Rect{0, 0, 90, 90}},
		{"bottom right overflow", Rect{150, 180, 100, 100}, Rect{150, 180, 50, 20}},
		{"covers everything", Rect{-50, -50, 400, 400}, Rect{0, 0, 200, 200}},
		{"fully outside", Rect{300, 300, 10, 10}, Rect{300, 300, -100, -100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in, bounds); got != tt.want {
				t.Fatalf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestClampOffsetMonitor(t *testing.T) {
	bounds := Monitor{X: 1920, Y: 0, W: 2560, H: 1440}
	got := Clamp(Rect{X: 1900, Y: -20, W: 120, H: 100}, bounds)
	want := Rect{X: 1920, Y: 0, W: 100, H: 80}
	if got != want {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}
}

func TestSnapBottom(t *testing.T) {
	bounds := Monitor{X: 0, Y: 0, W: 1920, H: 1080}

	snapped := SnapBottom(Rect{X: 0, Y: 500, W: 100, H: 550}, bounds, DefaultSnapMargin)
	if snapped.Y+snapped.H != 1080 {
		t.Fatalf("Expected 30px gap to close, bottom at %d", snapped.Y+snapped.H)
	}
	if snapped.H != 580 {
		t.Fatalf("Expected height 580, got %d", snapped.H)
	}

	far := Rect{X: 0, Y: 500, W: 100, H: 520}
	if got := SnapBottom(far, bounds, DefaultSnapMargin); got != far {
		t.Fatalf("Expected 60px gap untouched, got %+v", got)
	}

	exact := Rect{X: 0, Y: 500, W: 100, H: 530}
	if got := SnapBottom(exact, bounds, DefaultSnapMargin); got.H != 580 {
		t.Fatalf("Expected gap equal to margin to close, got %+v", got)
	}

	flush := Rect{X: 0, Y: 500, W: 100, H: 580}
	if got := SnapBottom(flush, bounds, DefaultSnapMargin); got != flush {
		t.Fatalf("Expected flush rect untouched, got %+v", got)
	}
}

func TestEvenDimensions(t *testing.T) {
	tests := []struct {
		in, want Rect
	}{
		{Rect{W: 101, H: 100}, Rect{W: 100, H: 100}},
		{Rect{W: 100, H: 100}, Rect{W: 100, H: 100}},
		{Rect{W: 100, H: 33}, Rect{W: 100, H: 32}},
		{Rect{W: 1, H: 1}, Rect{W: 0, H: 0}},
	}
	for _, tt := range tests {
		if got := EvenDimensions(tt.in); got != tt.want {
			t.Errorf("EvenDimensions(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	bounds := Monitor{X: 0, Y: 0, W: 1920, H: 1080}

	got, err := Resolve(Rect{X: -10, Y: 100, W: 311, H: 955}, bounds, DefaultSnapMargin)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	// clamp: x=0 w=301; snap: gap 25 -> h=980; even: w=300
	want := Rect{X: 0, Y: 100, W: 300, H: 980}
	if got != want {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}
	if got.W%2 != 0 || got.H%2 != 0 {
		t.Fatalf("Expected even dimensions, got %+v", got)
	}
}

func TestResolveInvalidRegion(t *testing.T) {
	bounds := Monitor{X: 0, Y: 0, W: 200, H: 200}

	cases := []Rect{
		{X: 200, Y: 0, W: 50, H: 50},   // width clamps to 0
		{X: 10, Y: 10, W: 0, H: 50},    // zero width selection
		{X: 10, Y: 10, W: 1, H: 1},     // rounds down to zero
		{X: -100, Y: 0, W: 40, H: 100}, // fully left of bounds
	}
	for _, in := range cases {
		_, err := Resolve(in, bounds, DefaultSnapMargin)
		if err == nil {
			t.Fatalf("Expected invalid region for %+v", in)
		}
		if !errors.Is(err, ErrInvalidRegion) {
			t.Fatalf("Expected ErrInvalidRegion, got %v", err)
		}
		var invalid *InvalidRegionError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected *InvalidRegionError, got %T", err)
		}
		if invalid.W > 0 && invalid.H > 0 {
			t.Fatalf("Expected non-positive dimension in %+v", invalid)
		}
	}
}
