package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"already clean", "The Great Gatsby", "The Great Gatsby"},
		{"leading and trailing", "  1984  ", "1984"},
		{"internal runs collapsed", "George   Orwell", "George Orwell"},
		{"tabs and newlines", "Jane\t\nAusten", "Jane Austen"},
		{"mixed", "  To   Kill a\tMockingbird ", "To Kill a Mockingbird"},
		{"unicode preserved", "Gabriel García Márquez", "Gabriel García Márquez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimAndNormalize_Idempotent(t *testing.T) {
	input := "  The   Catcher in the  Rye  "
	once := TrimAndNormalize(input)
	twice := TrimAndNormalize(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"trimmed", "  978-0-7432-7356-5  ", "978-0-7432-7356-5"},
		{"hyphens preserved", "978-0-06-112008-4", "978-0-06-112008-4"},
		{"case preserved", "044657222X", "044657222X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeISBN(tt.input); got != tt.want {
				t.Errorf("NormalizeISBN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
