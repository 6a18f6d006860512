package metrics

import "testing"

func TestHighlightMaxAndMin(t *testing.T) {
	table := mustParse(t, summaryCSV)
	grid, err := Highlight(table, []HighlightRule{
		{Column: ColumnRecall, Mode: HighlightMax, Color: "lightgreen"},
		{Column: ColumnThreshold, Mode: HighlightMin, Color: "lightsalmon"},
	})
	if err != nil {
		t.Fatalf("Highlight error: %v", err)
	}
	recallCol := indexOf(table.Columns, ColumnRecall)
	thresholdCol := indexOf(table.Columns, ColumnThreshold)

	if grid[1][recallCol] != "lightgreen" {
		t.Fatalf("expected max recall highlighted, got %q", grid[1][recallCol])
	}
	if grid[0][recallCol] != "" || grid[2][recallCol] != "" {
		t.Fatal("only the max recall cell should be highlighted")
	}
	if grid[0][thresholdCol] != "lightsalmon" {
		t.Fatalf("expected min threshold highlighted, got %q", grid[0][thresholdCol])
	}
	if grid[1][0] != "" {
		t.Fatal("model column must never be styled")
	}
}

func TestHighlightTiesMarkAll(t *testing.T) {
	table := mustParse(t, "Model,Accuracy\nA,0.8\nB,0.7\nC,0.8\n")
	grid, err := Highlight(table, []HighlightRule{{Column: ColumnAccuracy, Mode: HighlightMax, Color: "green"}})
	if err != nil {
		t.Fatalf("Highlight error: %v", err)
	}
	if grid[0][1] != "green" || grid[2][1] != "green" || grid[1][1] != "" {
		t.Fatalf("unexpected tie handling: %v", grid)
	}
}

func TestHighlightErrors(t *testing.T) {
	table := mustParse(t, summaryCSV)
	if _, err := Highlight(table, []HighlightRule{{Column: "Missing", Mode: HighlightMax}}); err == nil {
		t.Fatal("expected error for unknown column")
	}
	if _, err := Highlight(table, []HighlightRule{{Column: ColumnAccuracy, Mode: "median"}}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
