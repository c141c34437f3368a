package domain

// Settings controls how a delivered notification is presented.
type Settings struct {
	Sound     bool `json:"sound"`
	Vibration bool `json:"vibration"`
	Silent    bool `json:"silent"`
}

// Normalize enforces the sound/silent exclusion: a silent notification
// plays no sound.
func (s *Settings) Normalize() {
	if s.Silent {
		s.Sound = false
	}
}

// DefaultSettings matches a fresh install: audible, vibrating, not silent.
func DefaultSettings() Settings {
	return Settings{Sound: true, Vibration: true, Silent: false}
}
