package fs

import (
	"reflect"
	"testing"
	"time"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSort(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixture := func() []Entry {
		return []Entry{
			{Name: "file10.txt", Size: 30, Modified: base.Add(3 * time.Hour)},
			{Name: "File2.txt", Size: 10, Modified: base.Add(1 * time.Hour)},
			{Name: "docs", IsDir: true, Modified: base},
			{Name: "alpha", Size: 20, Modified: base.Add(2 * time.Hour)},
		}
	}

	tests := []struct {
		name   string
		opts   SortOptions
		expect []string
	}{
		{
			name:   "natural dirs first",
			opts:   DefaultSortOptions(),
			expect: []string{"docs", "alpha", "File2.txt", "file10.txt"},
		},
		{
			name:   "natural reversed keeps dirs first",
			opts:   SortOptions{Method: SortNatural, DirsFirst: true, Reverse: true},
			expect: []string{"docs", "file10.txt", "File2.txt", "alpha"},
		},
		{
			name:   "size without dirs first",
			opts:   SortOptions{Method: SortSize},
			expect: []string{"docs", "File2.txt", "alpha", "file10.txt"},
		},
		{
			name:   "modified",
			opts:   SortOptions{Method: SortModified, DirsFirst: true},
			expect: []string{"docs", "File2.txt", "alpha", "file10.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := fixture()
			Sort(entries, tt.opts)
			if got := names(entries); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}
