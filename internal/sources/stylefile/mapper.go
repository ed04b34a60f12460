package stylefile

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/icebreaker/internal/domain"
)

// Mapper converts a styles file into domain styles.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// MapStyles overlays the file on base: entries whose ID matches a base
// style replace it in place, new IDs are appended in file order.
func (m *Mapper) MapStyles(f File, base []domain.Style) ([]domain.Style, error) {
	out := make([]domain.Style, len(base))
	copy(out, base)

	pos := make(map[string]int, len(out))
	for i, s := range out {
		pos[domain.NormalizeStyleID(s.ID)] = i
	}

	mapped := 0
	for _, props := range f.Styles {
		id := domain.NormalizeStyleID(props.ID)
		if id == "" {
			// Skip entries without id
			continue
		}

		s := domain.Style{
			ID:    id,
			Label: strings.TrimSpace(props.Label),
			Hint:  strings.TrimSpace(props.Hint),
		}
		if s.Label == "" {
			s.Label = strings.TrimSpace(props.ID)
		}
		if s.Hint == "" {
			s.Hint = s.Label
		}

		if i, ok := pos[id]; ok {
			out[i] = s
		} else {
			pos[id] = len(out)
			out = append(out, s)
		}
		mapped++
	}

	if mapped == 0 {
		return nil, fmt.Errorf("no valid styles found in styles file")
	}

	return out, nil
}
