package version

import "testing"

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)

	Version, Commit, Date = "v0.4.0", "0123456789abcdef", "2026-10-01"
	if got := String(); got != "v0.4.0 (0123456, 2026-10-01)" {
		t.Errorf("String() = %q", got)
	}

	Commit = "abc"
	if got := String(); got != "v0.4.0 (abc, 2026-10-01)" {
		t.Errorf("short commit: String() = %q", got)
	}
}
