package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Randhum/TimeClock/internal/model"
)

// Golden files live in testdata/. Regenerate with:
//
//	go test ./internal/report -update
func TestRenderText_Golden(t *testing.T) {
	entries := []model.TimeEntry{
		entry(t, 1, "2024-01-15 10:00:00", model.ActionIn),
		entry(t, 2, "2024-01-15 12:00:00", model.ActionOut),
		entry(t, 3, "2024-01-15 13:00:00", model.ActionIn),
		entry(t, 4, "2024-01-15 17:00:00", model.ActionOut),
		entry(t, 5, "2024-01-16 09:00:00", model.ActionIn),
	}
	r := Build(testEmployee, date(t, "2024-01-15"), date(t, "2024-01-16"), entries)

	g := goldie.New(t)
	g.Assert(t, "report_text", []byte(RenderText(r)))
}

func TestRenderText_EmptyGolden(t *testing.T) {
	r := Build(testEmployee, date(t, "2024-01-15"), date(t, "2024-01-16"), nil)

	g := goldie.New(t)
	g.Assert(t, "report_text_empty", []byte(RenderText(r)))
}
