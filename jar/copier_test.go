package jar

import "testing"

func TestValidEntryName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"a.txt", true},
		{"com/example/Main.class", true},
		{"META-INF/services/com.example.Thing", true},
		{"dir/../ok.txt", true},
		{"", false},
		{"/abs.txt", false},
		{"..", false},
		{"../escaped.txt", false},
		{"a/../../b.txt", false},
		{`a\b.txt`, false},
		{`..\escaped.txt`, false},
		{"C:evil.txt", false},
	}
	for _, tt := range tests {
		if got := validEntryName(tt.name); got != tt.want {
			t.Errorf("validEntryName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
