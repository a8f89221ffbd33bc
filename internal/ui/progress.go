package ui

import (
	"fmt"
	"strings"

	"grove/internal/sims/garden"
)

// ProgressLabel formats a zero-based stage as "Stage n/4".
func ProgressLabel(stage int) string {
	return fmt.Sprintf("Stage %d/%d", stage+1, garden.MaxStage+1)
}

// ProgressFraction is the filled share of a tree's progress bar in [0, 1].
func ProgressFraction(t garden.Tree) float64 {
	f := t.Growth / garden.GrowthTarget
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// ProgressBar renders a fixed-width text bar.
func ProgressBar(t garden.Tree, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(ProgressFraction(t)*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// CareMarks summarizes the pending boosts on a tree, e.g. "W F".
func CareMarks(t garden.Tree) string {
	var marks []string
	if t.Watered {
		marks = append(marks, "W")
	}
	if t.Fertilized {
		marks = append(marks, "F")
	}
	return strings.Join(marks, " ")
}
