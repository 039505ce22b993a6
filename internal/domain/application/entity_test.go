package application

import "testing"

func TestParseStatus(t *testing.T) {
	valid := []string{
		"Bookmarked", "Applied", "Phone Screen", "Technical Interview",
		"On-site", "Offer", "Rejected",
	}
	for _, s := range valid {
		st, err := ParseStatus(s)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
		if string(st) != s {
			t.Fatalf("ParseStatus(%q) = %q", s, st)
		}
	}

	for _, s := range []string{"", "applied", "Onsite", "Ghosted", "phone screen"} {
		if _, err := ParseStatus(s); err == nil {
			t.Fatalf("ParseStatus(%q) should fail", s)
		}
	}
}
