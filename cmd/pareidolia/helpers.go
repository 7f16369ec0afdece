package main

import (
	"fmt"
	"strings"
)

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatSeconds(seconds float64) string {
	if seconds < 10 {
		return fmt.Sprintf("%.2fs", seconds)
	}
	if seconds < 120 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	total := int(seconds)
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func resultKind(success bool) statusKind {
	if success {
		return statusOK
	}
	return statusError
}
