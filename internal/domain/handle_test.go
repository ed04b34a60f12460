package domain

import "testing"

func TestExtractHandle(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Handle
		wantOK bool
	}{
		{
			name:   "canonical url",
			input:  "https://www.linkedin.com/in/jane-doe",
			want:   "jane-doe",
			wantOK: true,
		},
		{
			name:   "trailing slash",
			input:  "https://linkedin.com/in/jane-doe/",
			want:   "jane-doe",
			wantOK: true,
		},
		{
			name:   "nested path",
			input:  "https://www.linkedin.com/in/jane-doe/recent-activity/all/",
			want:   "jane-doe",
			wantOK: true,
		},
		{
			name:   "query string is not part of the handle",
			input:  "https://www.linkedin.com/in/jane-doe?trk=public",
			want:   "jane-doe",
			wantOK: true,
		},
		{
			name:   "no scheme",
			input:  "linkedin.com/in/john_smith42",
			want:   "john_smith42",
			wantOK: true,
		},
		{
			name:   "surrounding whitespace",
			input:  "  https://linkedin.com/in/abc  ",
			want:   "abc",
			wantOK: true,
		},
		{
			name:   "company page",
			input:  "https://www.linkedin.com/company/acme",
			wantOK: false,
		},
		{
			name:   "empty handle",
			input:  "https://www.linkedin.com/in/",
			wantOK: false,
		},
		{
			name:   "other host",
			input:  "https://example.com/in/jane",
			wantOK: false,
		},
		{
			name:   "empty string",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage",
			input:  "%%%not a url at all",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractHandle(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractHandle(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExtractHandle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
