package game

import "fmt"

// TextRole tells a frontend how to style a line of overlay text.
type TextRole int

const (
	RoleTitle TextRole = iota
	RoleBody
	RoleHighlight
	RoleWarning
	RoleHint
)

// TextLine is one centred line of overlay text.
type TextLine struct {
	Text string
	Role TextRole
}

// Overlay returns the centred text for the current state. The flying HUD is
// not included; see HUD.
func (s *GameSession) Overlay() []TextLine {
	switch s.State {
	case StateTitle:
		lines := []TextLine{
			{"LUNAR LANDER", RoleTitle},
			{"Press SPACE to start", RoleBody},
			{"LEFT/RIGHT rotate   UP or SPACE thrust", RoleHint},
		}
		if len(s.HighScores) > 0 {
			lines = append(lines, TextLine{"", RoleBody})
			lines = append(lines, s.scoreLines(5)...)
		}
		return lines

	case StateResult:
		role := RoleHighlight
		if s.LastOutcome.Kind == Crash {
			role = RoleWarning
		}
		return []TextLine{
			{s.Message, role},
			{fmt.Sprintf("Fuel left: %d", floorInt(s.Lander.Fuel)), RoleBody},
			{"Press C to continue", RoleHint},
		}

	case StateEnteringInitials:
		entry := s.Initials
		for len(entry) < MaxInitials {
			entry += "_"
		}
		return []TextLine{
			{"GAME OVER", RoleWarning},
			{fmt.Sprintf("Final Score: %d", s.TotalScore), RoleHighlight},
			{"Enter your initials: " + entry, RoleBody},
			{"Press ENTER when done", RoleHint},
		}

	case StateScoreboard:
		lines := s.scoreLines(len(s.HighScores))
		return append(lines, TextLine{"Press R to restart", RoleHint})
	}
	return nil
}

func (s *GameSession) scoreLines(n int) []TextLine {
	lines := []TextLine{{"HIGH SCORES", RoleTitle}}
	if len(s.HighScores) == 0 {
		return append(lines, TextLine{"no scores yet", RoleBody})
	}
	for i, hs := range s.HighScores {
		if i >= n {
			break
		}
		lines = append(lines, TextLine{fmt.Sprintf("%2d. %-3s %7d", i+1, hs.Initials, hs.Score), RoleBody})
	}
	return lines
}

// LowFuel reports whether the HUD should show the low-fuel warning.
func (s *GameSession) LowFuel() bool {
	return s.State == StateFlying && s.Lander.Fuel <= LowFuelThreshold
}
