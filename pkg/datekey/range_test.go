package datekey

import (
	"math/rand"
	"reflect"
	"testing"
)

func keys(ss ...string) []DateKey {
	out := make([]DateKey, 0, len(ss))
	for _, s := range ss {
		out = append(out, MustParse(s))
	}
	return out
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    DateKey
		wantErr bool
	}{
		{in: "2026-03-01", want: "2026-03-01"},
		{in: " 2026-12-31 ", want: "2026-12-31"},
		{in: "2024-02-29", want: "2024-02-29"},
		{in: "2026-3-1", wantErr: true},
		{in: "2025-02-29", wantErr: true},
		{in: "03/01/2026", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("Parse(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextCrossesBoundaries(t *testing.T) {
	tests := map[string]string{
		"2026-01-31": "2026-02-01",
		"2024-02-28": "2024-02-29",
		"2025-02-28": "2025-03-01",
		"2026-12-31": "2027-01-01",
	}
	for in, want := range tests {
		if got := MustParse(in).Next(); got != DateKey(want) {
			t.Fatalf("%s.Next() = %s, want %s", in, got, want)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("2026-03-01..2026-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start != "2026-03-01" || r.End != "2026-03-05" {
		t.Fatalf("unexpected range %v", r)
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 days, got %d", r.Len())
	}

	single, err := ParseRange("2026-03-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.Start != single.End {
		t.Fatalf("expected single-day range, got %v", single)
	}

	for _, bad := range []string{"", "2026-03-05..2026-03-01", "2026-03-01..", "nope..2026-03-01"} {
		if _, err := ParseRange(bad); err == nil {
			t.Fatalf("ParseRange(%q): expected error", bad)
		}
	}
}

func TestRangeDaysInclusive(t *testing.T) {
	r := Range{Start: "2026-02-27", End: "2026-03-02"}
	want := keys("2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02")
	if got := r.Days(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Days() = %v, want %v", got, want)
	}
	if got := (Range{Start: "2026-03-02", End: "2026-03-01"}).Days(); got != nil {
		t.Fatalf("reversed range should expand to nothing, got %v", got)
	}
}

func TestCollapse(t *testing.T) {
	tests := []struct {
		name  string
		dates []DateKey
		want  []Range
	}{
		{name: "empty"},
		{
			name:  "single",
			dates: keys("2026-03-04"),
			want:  []Range{{Start: "2026-03-04", End: "2026-03-04"}},
		},
		{
			name:  "contiguous",
			dates: keys("2026-03-03", "2026-03-01", "2026-03-05", "2026-03-02", "2026-03-04"),
			want:  []Range{{Start: "2026-03-01", End: "2026-03-05"}},
		},
		{
			name:  "scattered",
			dates: keys("2026-01-01", "2026-01-02", "2026-01-06", "2026-01-08", "2026-01-09"),
			want: []Range{
				{Start: "2026-01-01", End: "2026-01-02"},
				{Start: "2026-01-06", End: "2026-01-06"},
				{Start: "2026-01-08", End: "2026-01-09"},
			},
		},
		{
			name:  "across month and year",
			dates: keys("2025-12-30", "2025-12-31", "2026-01-01", "2026-02-28", "2026-03-01"),
			want: []Range{
				{Start: "2025-12-30", End: "2026-01-01"},
				{Start: "2026-02-28", End: "2026-03-01"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collapse(NewSet(tt.dates...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Collapse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollapseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := MustParse("2026-01-01")
	for i := 0; i < 200; i++ {
		set := make(Set)
		for j := 0; j < rng.Intn(40); j++ {
			set.Add(base.AddDays(rng.Intn(90)))
		}

		ranges := Collapse(set)
		if got := Expand(ranges...); !got.Equal(set) {
			t.Fatalf("round trip %d: expand(collapse(S)) = %v, want %v", i, got.Sorted(), set.Sorted())
		}
		for k := 1; k < len(ranges); k++ {
			prev, cur := ranges[k-1], ranges[k]
			if !prev.End.Next().Before(cur.Start) {
				t.Fatalf("round trip %d: ranges %v and %v touch or overlap", i, prev, cur)
			}
		}
	}
}
