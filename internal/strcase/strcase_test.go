package strcase

import "testing"

func TestToExported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"LowerFirst", "calc", "Calc"},
		{"AlreadyExported", "Calc", "Calc"},
		{"SingleLetter", "a", "A"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToExported(tt.input); got != tt.want {
				t.Fatalf("ToExported(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "CamelCase", "camel_case"},
		{"SingleWord", "Camel", "camel"},
		{"Leading", "URLValue", "url_value"},
		{"TrailingUpper", "UserID", "user_id"},
		{"AcronymOnly", "URL", "url"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ToSnakeCase(tt.input); got != tt.want {
				t.Fatalf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
