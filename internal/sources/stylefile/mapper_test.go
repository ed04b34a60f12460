package stylefile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

func TestMapStylesOverlaysBase(t *testing.T) {
	base := []domain.Style{
		{ID: "professional", Label: "Professional", Hint: "p"},
		{ID: "casual", Label: "Casual", Hint: "c"},
	}
	f := File{Styles: []StyleProps{
		{ID: "Casual", Label: "Relaxed", Hint: "relaxed hint"},
		{ID: "witty"},
		{ID: "  "},
	}}

	got, err := NewMapper().MapStyles(f, base)
	if err != nil {
		t.Fatalf("MapStyles() error = %v", err)
	}

	want := []domain.Style{
		{ID: "professional", Label: "Professional", Hint: "p"},
		{ID: "casual", Label: "Relaxed", Hint: "relaxed hint"},
		{ID: "witty", Label: "witty", Hint: "witty"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapStyles() mismatch (-want +got):\n%s", diff)
	}
	if base[1].Label != "Casual" {
		t.Error("MapStyles must not mutate base")
	}
}

func TestMapStylesRejectsEmptyFile(t *testing.T) {
	if _, err := NewMapper().MapStyles(File{}, domain.DefaultStyles()); err == nil {
		t.Error("MapStyles() should fail when the file has no usable style")
	}
}
