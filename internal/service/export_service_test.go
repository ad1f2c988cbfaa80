package service

import (
	"courseforge_backend/internal/model"
	"encoding/json"
	"strings"
	"testing"
)

func exportCourse() *model.Course {
	return &model.Course{
		ID:          1,
		Title:       "Export Me",
		Description: "about exporting",
		Modules: []model.Module{
			{
				Title:       "M1",
				Description: "module one",
				Order:       1,
				Lessons: []model.Lesson{
					{
						Title:               "L1",
						Order:               1,
						BeginnerContent:     "beginner text",
						IntermediateContent: "intermediate text",
						ExpertContent:       "expert text",
						Examples:            []string{"ex1", "ex2"},
						Summary:             "short recap",
					},
					{
						Title:         "L2",
						Order:         2,
						ExpertContent: "only expert",
					},
				},
			},
		},
	}
}

func TestExportSummary(t *testing.T) {
	out := NewExportService().Summary(exportCourse())

	for _, want := range []string{"# Export Me", "## M1", "### L1", "short recap"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "beginner text") {
		t.Fatalf("summary must not carry lesson bodies")
	}
}

func TestExportNotes_ContentPreference(t *testing.T) {
	out := NewExportService().Notes(exportCourse())

	// 有中级内容时优先中级
	if !strings.Contains(out, "intermediate text") {
		t.Fatalf("expected intermediate content in notes")
	}
	if strings.Contains(out, "beginner text") {
		t.Fatalf("beginner content should be shadowed by intermediate")
	}
	// 只有进阶内容时退到进阶
	if !strings.Contains(out, "only expert") {
		t.Fatalf("expected expert fallback for second lesson")
	}
	if !strings.Contains(out, "#### Examples") || !strings.Contains(out, "- ex1") {
		t.Fatalf("examples section missing")
	}
	if !strings.Contains(out, "**Summary:** short recap") {
		t.Fatalf("summary line missing")
	}
}

func TestExportFlashcardsCSV(t *testing.T) {
	cards := []model.Flashcard{
		{Front: "f1", Back: "b1"},
		{Front: "has, comma", Back: "b2"},
	}
	out, err := NewExportService().FlashcardsCSV(cards)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Front,Back" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[2], `"has, comma"`) {
		t.Fatalf("comma field not quoted: %q", lines[2])
	}
}

func TestExportFlashcardsJSON(t *testing.T) {
	out, err := NewExportService().FlashcardsJSON([]model.Flashcard{{Front: "f1", Back: "b1"}})
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var cards []map[string]string
	if err := json.Unmarshal([]byte(out), &cards); err != nil {
		t.Fatalf("output not valid json: %v", err)
	}
	if len(cards) != 1 || cards[0]["front"] != "f1" {
		t.Fatalf("unexpected payload: %v", cards)
	}
	if !strings.Contains(out, "\n  ") {
		t.Fatalf("expected two-space indentation")
	}
}

func TestExportFlashcardsJSON_EmptyIsArray(t *testing.T) {
	out, err := NewExportService().FlashcardsJSON(nil)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("expected empty array, got %q", out)
	}
}
