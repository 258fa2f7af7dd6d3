package resvec

import (
	"reflect"
	"testing"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/shopspring/decimal"
)

func rc(id string, count int64) domain.ResourceCount {
	return domain.ResourceCount{Identificator: id, Count: count}
}

func TestNormalize(t *testing.T) {
	in := Vector{
		rc("wood", 2),
		{Identificator: "plank", Name: "Plank", Count: 1},
		rc("wood", 3),
	}

	got := Normalize(in)
	want := Vector{rc("wood", 5), {Identificator: "plank", Name: "Plank", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %+v, want %+v", got, want)
	}

	if in[0].Count != 2 {
		t.Errorf("Normalize mutated its input: %+v", in)
	}
}

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		sign int64
		want Vector
	}{
		{
			name: "add merges by identifier",
			a:    Vector{rc("wood", 7)},
			b:    Vector{rc("wood", 2), rc("stone", 1)},
			sign: 1,
			want: Vector{rc("wood", 9), rc("stone", 1)},
		},
		{
			name: "subtract may go negative",
			a:    Vector{rc("wood", 1)},
			b:    Vector{rc("wood", 2), rc("plank", 3)},
			sign: -1,
			want: Vector{rc("wood", -1), rc("plank", -3)},
		},
		{
			name: "empty a",
			a:    nil,
			b:    Vector{rc("iron", 4)},
			sign: 1,
			want: Vector{rc("iron", 4)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum(tt.a, tt.b, tt.sign)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sum = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSumDoesNotMutate(t *testing.T) {
	a := Vector{rc("wood", 7)}
	b := Vector{rc("wood", 2)}

	_ = Sum(a, b, -1)

	if a[0].Count != 7 || b[0].Count != 2 {
		t.Errorf("Sum mutated inputs: a=%+v b=%+v", a, b)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(Vector{rc("wood", 1)}, Vector{rc("stone", 2)}, Vector{rc("wood", 3)})
	want := Vector{rc("wood", 4), rc("stone", 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestScale(t *testing.T) {
	got := Scale(Vector{rc("wood", 2), rc("coal", 1)}, 3)
	want := Vector{rc("wood", 6), rc("coal", 3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scale = %+v, want %+v", got, want)
	}
}

func TestScaleDecimal(t *testing.T) {
	tests := []struct {
		count int64
		k     string
		want  int64
	}{
		{2, "1.5", 3},
		{3, "1.5", 4},
		{-3, "1.5", -4},
		{5, "1", 5},
	}

	for _, tt := range tests {
		got := ScaleDecimal(Vector{rc("plank", tt.count)}, decimal.RequireFromString(tt.k))
		if got[0].Count != tt.want {
			t.Errorf("ScaleDecimal(%d, %s) = %d, want %d", tt.count, tt.k, got[0].Count, tt.want)
		}
	}
}

func TestFits(t *testing.T) {
	limit := Vector{rc("wood", 7), rc("plank", 10)}

	tests := []struct {
		name string
		v    Vector
		want bool
	}{
		{"within", Vector{rc("wood", 6)}, true},
		{"equal", Vector{rc("wood", 7), rc("plank", 10)}, true},
		{"over", Vector{rc("wood", 8)}, false},
		{"missing identifier", Vector{rc("stone", 1)}, false},
		{"empty vector", Vector{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fits(tt.v, limit); got != tt.want {
				t.Errorf("Fits(%+v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestCountAndHasPositive(t *testing.T) {
	v := Vector{rc("wood", 0), rc("plank", 2)}

	if n, ok := Count(v, "plank"); !ok || n != 2 {
		t.Errorf("Count(plank) = %d, %v", n, ok)
	}
	if _, ok := Count(v, "stone"); ok {
		t.Error("Count(stone) reported present")
	}
	if !HasPositive(v) {
		t.Error("HasPositive = false, want true")
	}
	if HasPositive(Vector{rc("wood", 0), rc("coal", -1)}) {
		t.Error("HasPositive on non-positive vector = true")
	}
}
