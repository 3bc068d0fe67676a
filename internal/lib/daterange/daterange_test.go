package daterange

import (
	"testing"
	"time"
)

func TestDays_TableTests(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []string
	}{
		{
			name:  "single day",
			start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  []string{"2024-03-10"},
		},
		{
			name:  "three days inclusive",
			start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			want:  []string{"2024-03-10", "2024-03-11", "2024-03-12"},
		},
		{
			name:  "time of day is ignored",
			start: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC),
			want:  []string{"2024-03-10", "2024-03-11"},
		},
		{
			name:  "month boundary",
			start: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:  []string{"2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:  "end before start",
			start: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Days(tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("Days() returned %d days, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Days()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDays_CountMatchesRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	got := Days(start, end)
	if len(got) != 31 {
		t.Fatalf("Days() returned %d days, want 31", len(got))
	}
	if got[0] != "2024-01-01" || got[30] != "2024-01-31" {
		t.Errorf("Days() boundaries = %s..%s, want 2024-01-01..2024-01-31", got[0], got[30])
	}
}
