package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/okanv/sitelint/internal/model"
)

func render(t *testing.T, res *model.AuditResult) string {
	t.Helper()
	var b strings.Builder
	if err := Render(&b, res); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestRender_Counts(t *testing.T) {
	out := render(t, &model.AuditResult{
		BaseURL:           "https://example.com",
		DocumentCount:     12,
		ExternalLinkCount: 4,
		Score:             100,
	})

	for _, want := range []string{
		"LINK AUDIT REPORT",
		"Base URL: https://example.com",
		"Files Scanned: 12",
		"External Links: 4",
		"FINAL SCORE",
		"100/100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRender_NoBaseURL(t *testing.T) {
	out := render(t, &model.AuditResult{Score: 100})
	if !strings.Contains(out, "Base URL: (none)") {
		t.Errorf("report should mark an undefined base URL:\n%s", out)
	}
}

func TestRender_ErrorsRankedBeforeWarnings(t *testing.T) {
	res := &model.AuditResult{
		DocumentCount: 2,
		Issues: []model.Issue{
			{Level: model.LevelWarn, Message: "first warn", Context: "a.html", Penalty: -2},
			{Level: model.LevelError, Message: "the error", Context: "b.html", Penalty: -10},
			{Level: model.LevelWarn, Message: "second warn", Context: "c.html", Penalty: -2},
		},
		Score: 86,
	}
	out := render(t, res)

	errPos := strings.Index(out, "the error")
	firstWarnPos := strings.Index(out, "first warn")
	secondWarnPos := strings.Index(out, "second warn")
	if errPos < 0 || firstWarnPos < 0 || secondWarnPos < 0 {
		t.Fatalf("issues missing from report:\n%s", out)
	}
	if errPos > firstWarnPos {
		t.Error("ERROR issues must rank before WARN issues")
	}
	if firstWarnPos > secondWarnPos {
		t.Error("sort must be stable within a level")
	}
}

func TestRender_TopSliceAndRemainder(t *testing.T) {
	res := &model.AuditResult{Score: 50}
	for i := 0; i < 14; i++ {
		res.Issues = append(res.Issues, model.Issue{
			Level:   model.LevelWarn,
			Message: fmt.Sprintf("warn %02d", i),
			Context: "a.html",
			Penalty: -2,
		})
	}
	out := render(t, res)

	if !strings.Contains(out, "warn 09") {
		t.Error("tenth issue should be shown")
	}
	if strings.Contains(out, "warn 10") {
		t.Error("eleventh issue should be cut from the top slice")
	}
	if !strings.Contains(out, "... and 4 more issues.") {
		t.Errorf("remainder count missing:\n%s", out)
	}
}

func TestRender_ScoreFloorShown(t *testing.T) {
	out := render(t, &model.AuditResult{Score: 0, RawScore: -40})
	if !strings.Contains(out, "0/100") {
		t.Errorf("floored score missing:\n%s", out)
	}
}
