package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cory-johannsen/statengine/internal/game/character"
	"github.com/cory-johannsen/statengine/internal/game/environment"
)

const defaultEffectTicks = 10

// scenario is the set of mutations requested on the command line.
type scenario struct {
	Name        string
	Equip       string
	Skills      string
	XP          float64
	Stance      string
	Light       string
	Environment string
	Elixirs     string
	Books       string
	Effects     string
}

type effectSpec struct {
	ID     string
	Stacks int
	Ticks  int
}

// splitList splits a comma separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseSkills parses "id=level,id=level". Later entries for the same ID win.
func parseSkills(s string) (map[string]int, error) {
	out := make(map[string]int)
	for _, part := range splitList(s) {
		id, raw, ok := strings.Cut(part, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("skill %q: want id=level", part)
		}
		level, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("skill %q: level: %w", part, err)
		}
		out[id] = level
	}
	return out, nil
}

// parseEffects parses "id[:stacks[:ticks]]" entries.
func parseEffects(s string) ([]effectSpec, error) {
	var out []effectSpec
	for _, part := range splitList(s) {
		fields := strings.Split(part, ":")
		if len(fields) > 3 || fields[0] == "" {
			return nil, fmt.Errorf("effect %q: want id[:stacks[:ticks]]", part)
		}
		spec := effectSpec{ID: fields[0], Stacks: 1, Ticks: defaultEffectTicks}
		for i, dst := range []*int{&spec.Stacks, &spec.Ticks} {
			if len(fields) <= i+1 {
				break
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("effect %q: %q must be a positive integer", part, fields[i+1])
			}
			*dst = n
		}
		out = append(out, spec)
	}
	return out, nil
}

// apply runs the scenario against c. XP is granted last so bonuses from books
// and skill milestones apply to it.
func (sc scenario) apply(c *character.Character) error {
	skills, err := parseSkills(sc.Skills)
	if err != nil {
		return err
	}
	effects, err := parseEffects(sc.Effects)
	if err != nil {
		return err
	}
	light, err := environment.ParseLightLevel(sc.Light)
	if err != nil {
		return err
	}

	for _, id := range slices.Sorted(maps.Keys(skills)) {
		if err := c.SetSkillLevel(id, skills[id]); err != nil {
			return err
		}
	}
	for _, id := range splitList(sc.Equip) {
		if err := c.Equip(id); err != nil {
			return err
		}
	}
	if sc.Stance != "" {
		if err := c.SetStance(sc.Stance); err != nil {
			return err
		}
	}
	if sc.Environment != "" {
		if err := c.SetEnvironment(sc.Environment); err != nil {
			return err
		}
	}
	c.SetLight(light)
	for _, id := range splitList(sc.Elixirs) {
		if err := c.ConsumeElixir(id); err != nil {
			return err
		}
	}
	for _, id := range splitList(sc.Books) {
		if err := c.ReadBook(id); err != nil {
			return err
		}
	}
	for _, e := range effects {
		if err := c.ApplyEffect(e.ID, e.Stacks, e.Ticks); err != nil {
			return err
		}
	}
	if sc.XP > 0 {
		if _, err := c.AddXP(sc.XP, true); err != nil {
			return err
		}
	}
	return nil
}

// printCharacter writes the ledger and every attribute as an aligned table.
func printCharacter(w io.Writer, c *character.Character) error {
	l := c.Ledger()
	if _, err := fmt.Fprintf(w, "%s (%s) level %d  xp %g/%g  total %g\n\n",
		c.Name, c.ID, l.Level, l.CurrentXP, l.XPToNextLevel, l.TotalXP); err != nil {
		return err
	}

	attrs := c.Attributes()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "attribute\tfull\tflat\tmultiplier\t")
	for _, attr := range slices.Sorted(maps.Keys(attrs.Full)) {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t\n",
			attr, attrs.Full[attr], attrs.TotalFlat[attr], attrs.TotalMultiplier[attr])
	}
	return tw.Flush()
}
