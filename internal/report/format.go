// internal/report/format.go
package report

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteText prints a summary in the key=value style of the headless tools.
func WriteText(w io.Writer, s Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Match %s (seed=%d) ---\n", s.MatchID, s.Seed)
	outcome := "unfinished"
	if s.Finished {
		outcome = "winner=" + s.Winner
	}
	fmt.Fprintf(&b, "outcome: %s ticks=%d game_time=%.0fms\n", outcome, s.Ticks, s.Duration)
	for _, side := range s.Sides {
		fmt.Fprintf(&b, "[%s] base_hp=%.0f money=%.1f level=%d kills=%d lost=%d first_spawn=%.0f\n",
			side.Faction, side.BaseHealth, side.Money, side.Level, side.Kills, side.Lost, side.FirstSpawn)
		fmt.Fprintf(&b, "[%s] spawned: %s\n", side.Faction, joinCounts(side.Spawned))
		if len(side.PolicyTime) > 0 {
			fmt.Fprintf(&b, "[%s] policy_ms: %s\n", side.Faction, joinTimes(side.PolicyTime))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteYAML emits a summary as a YAML document.
func WriteYAML(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}

// Write picks a writer by format name.
func Write(w io.Writer, format string, s Summary) error {
	switch format {
	case "", "text":
		return WriteText(w, s)
	case "yaml":
		return WriteYAML(w, s)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}

func joinTimes(m map[string]float64) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, fmt.Sprintf("%s=%.0f", k, m[k]))
	}
	return strings.Join(parts, " ")
}
