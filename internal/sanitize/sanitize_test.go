package sanitize

import "testing"

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Apple", "Apple"},
		{"simple tag", "<b>Apple</b>", "Apple"},
		{"nested tags", "<span><em>Green</em> Apple</span>", "Green Apple"},
		{"entity", "Fish &amp; Chips", "Fish & Chips"},
		{"empty string", "", ""},
		{"tag only", "<img src=x>", ""},
		{"text around tag", "a <i>b</i> c", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.input); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
