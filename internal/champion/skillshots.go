// Package champion provides static champion reference data: the
// champion-to-skillshot-ability lookup consumed by feature extraction, and
// a Data Dragon version client for keeping reference data current.
package champion

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// AbilitySlot identifies one of the four castable ability slots.
type AbilitySlot int

// Ability slots in cast-counter order.
const (
	SlotQ AbilitySlot = iota
	SlotW
	SlotE
	SlotR
)

// SkillshotTable maps champion names to the ability slots whose casts count
// toward skillshot accuracy. Champions absent from the table have no
// qualifying casts, which yields a hit rate of 0 by the zero-denominator
// policy rather than an error.
type SkillshotTable struct {
	byChampion map[string][]AbilitySlot
}

// defaultSkillshots covers the champions whose kits are predominantly
// skillshot-based. Slots not listed are targeted abilities and are excluded
// from the accuracy denominator.
var defaultSkillshots = map[string][]AbilitySlot{
	"Ahri":         {SlotQ, SlotE},
	"Aurelion Sol": {SlotQ},
	"Blitzcrank":   {SlotQ},
	"Braum":        {SlotQ, SlotR},
	"Caitlyn":      {SlotQ, SlotW, SlotE, SlotR},
	"Ezreal":       {SlotQ, SlotW, SlotR},
	"Gragas":       {SlotQ, SlotR},
	"Heimerdinger": {SlotW, SlotE},
	"Jhin":         {SlotW, SlotE},
	"Jinx":         {SlotW, SlotR},
	"Karma":        {SlotQ},
	"Kassadin":     {SlotE},
	"KogMaw":       {SlotQ, SlotE, SlotR},
	"LeBlanc":      {SlotE},
	"Leona":        {SlotE, SlotR},
	"Lucian":       {SlotQ, SlotW},
	"Lux":          {SlotQ, SlotE, SlotR},
	"Morgana":      {SlotQ, SlotW},
	"Nami":         {SlotQ, SlotR},
	"Neeko":        {SlotQ, SlotE},
	"Nidalee":      {SlotQ},
	"Orianna":      {SlotQ, SlotR},
	"Pyke":         {SlotQ, SlotE},
	"Rakan":        {SlotQ},
	"Senna":        {SlotQ, SlotW, SlotR},
	"Seraphine":    {SlotQ, SlotW, SlotE, SlotR},
	"Sivir":        {SlotQ},
	"Swain":        {SlotQ, SlotW, SlotE},
	"Syndra":       {SlotQ, SlotW, SlotE},
	"Thresh":       {SlotQ, SlotE, SlotR},
	"Twisted Fate": {SlotQ},
	"Varus":        {SlotQ, SlotE, SlotR},
	"VelKoz":       {SlotQ, SlotW, SlotE, SlotR},
	"Xerath":       {SlotQ, SlotW, SlotE, SlotR},
	"Zed":          {SlotQ},
	"Ziggs":        {SlotQ, SlotW, SlotE, SlotR},
	"Zoe":          {SlotQ, SlotE},
	"Zyra":         {SlotQ, SlotE},
}

// DefaultTable returns the built-in skillshot lookup table.
func DefaultTable() *SkillshotTable {
	return &SkillshotTable{byChampion: defaultSkillshots}
}

// LoadTable reads a champion-to-slots table from a JSON file of the form
// {"Lux": ["Q", "E", "R"], ...}, replacing the built-in table entirely.
func LoadTable(path string) (*SkillshotTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skillshot table: %w", err)
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse skillshot table: %w", err)
	}

	table := make(map[string][]AbilitySlot, len(raw))
	for champ, slots := range raw {
		parsed := make([]AbilitySlot, 0, len(slots))
		for _, s := range slots {
			slot, err := parseSlot(s)
			if err != nil {
				return nil, fmt.Errorf("champion %s: %w", champ, err)
			}
			parsed = append(parsed, slot)
		}
		table[champ] = parsed
	}
	return &SkillshotTable{byChampion: table}, nil
}

func parseSlot(s string) (AbilitySlot, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Q":
		return SlotQ, nil
	case "W":
		return SlotW, nil
	case "E":
		return SlotE, nil
	case "R":
		return SlotR, nil
	default:
		return 0, fmt.Errorf("unknown ability slot %q", s)
	}
}

// Slots returns the skillshot slots flagged for a champion.
func (t *SkillshotTable) Slots(champ string) []AbilitySlot {
	return t.byChampion[champ]
}

// QualifyingCasts sums a participant's ability casts restricted to the
// slots flagged as skillshots for their champion. A champion with no
// flagged slots yields 0.
func (t *SkillshotTable) QualifyingCasts(p *models.MatchParticipantRecord) int {
	casts := 0
	for _, slot := range t.byChampion[p.ChampionName] {
		switch slot {
		case SlotQ:
			casts += p.Spell1Casts
		case SlotW:
			casts += p.Spell2Casts
		case SlotE:
			casts += p.Spell3Casts
		case SlotR:
			casts += p.Spell4Casts
		}
	}
	return casts
}
