package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	tests := []struct {
		name    string
		commit  string
		date    string
		want    string
		notWant string
	}{
		{name: "dev build", commit: "unknown", date: "unknown", want: "swatch version 1.2.3 (", notWant: "commit"},
		{name: "release", commit: "0123456789abcdef", date: "2026-01-01T00:00:00Z", want: "commit: 01234567,"},
		{name: "short commit", commit: "abc", date: "2026-01-01T00:00:00Z", want: "commit: abc,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, Date = "1.2.3", tt.commit, tt.date
			got := String()
			if !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("String() = %q, should not contain %q", got, tt.notWant)
			}
		})
	}
}
