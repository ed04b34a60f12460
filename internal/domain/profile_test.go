package domain

import (
	"errors"
	"testing"
)

func TestCurrentPosition(t *testing.T) {
	tests := []struct {
		name      string
		positions []Position
		wantTitle string
		wantOK    bool
	}{
		{
			name:   "no positions",
			wantOK: false,
		},
		{
			name: "all closed",
			positions: []Position{
				{Title: "Intern", End: &Date{Year: 2019}},
				{Title: "Analyst", End: &Date{Year: 2021, Month: 6}},
			},
			wantOK: false,
		},
		{
			name: "first open wins",
			positions: []Position{
				{Title: "Old", End: &Date{Year: 2020}},
				{Title: "CTO"},
				{Title: "Advisor"},
			},
			wantTitle: "CTO",
			wantOK:    true,
		},
		{
			name: "zero end date counts as open",
			positions: []Position{
				{Title: "Founder", End: &Date{}},
			},
			wantTitle: "Founder",
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{Positions: tt.positions}
			got, ok := p.CurrentPosition()
			if ok != tt.wantOK {
				t.Fatalf("CurrentPosition() ok = %v, want %v", ok, tt.wantOK)
			}
			if got.Title != tt.wantTitle {
				t.Errorf("CurrentPosition().Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "Jane Doe"},
		{"Jane", "", "Jane"},
		{"", "Doe", "Doe"},
		{"", "", ""},
	}
	for _, tt := range tests {
		got := Profile{FirstName: tt.first, LastName: tt.last}.FullName()
		if got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestDecodeErrorMatchesUpstream(t *testing.T) {
	err := &DecodeError{Resource: "profile", Err: errors.New("bad id")}
	if !errors.Is(err, ErrDecode) {
		t.Error("DecodeError should match ErrDecode")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Error("DecodeError should match ErrUpstream")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("DecodeError should not match ErrNotFound")
	}
}
