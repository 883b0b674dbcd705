package gallery

import "testing"

func TestDateInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"empty string is the sentinel", "", SentinelDateInt},
		{"too short is the sentinel", "2024-06", SentinelDateInt},
		{"date only defaults the hour bucket", "2024-06-01", 2024060100},
		{"date-time keeps the hour", "2024-06-01T15:30:00", 2024060115},
		{"midnight", "2024-01-01T00:05:00", 2024010100},
		{"trailing zone is ignored", "2023-12-31T23:59:59Z", 2023123123},
		{"non-digit slices fall back to the sentinel", "yyyy-mm-dd", SentinelDateInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateInt(tt.input); got != tt.want {
				t.Errorf("DateInt(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateInt_SentinelIsYear1800(t *testing.T) {
	if SentinelDateInt != 1800010100 {
		t.Errorf("SentinelDateInt = %d, want 1800010100", SentinelDateInt)
	}
	if DateInt("") != DateInt("180") {
		t.Error("short inputs should share the sentinel value")
	}
}
