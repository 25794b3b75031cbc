package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings is the application configuration, loadable from settings.json
// and overridable by command-line flags. The globe core receives a value
// derived from this at build time; settings are never mutated while a
// generation is live.
type Settings struct {
	Globe  GlobeSettings  `json:"globe"`
	Server ServerSettings `json:"server"`
	Viewer ViewerSettings `json:"viewer"`
}

type GlobeSettings struct {
	DotCount      int     `json:"dotCount"`      // spiral dots before land filtering, >= 2
	Radius        float64 `json:"radius"`        // sphere radius in world units, > 0
	LandThreshold int     `json:"landThreshold"` // brightness cutoff, 0-255
	DotColor      string  `json:"dotColor"`      // hex, inactive dots
	ActiveColor   string  `json:"activeColor"`   // hex, activated dots without an explicit color
}

type ServerSettings struct {
	Addr             string `json:"addr"`
	UpdateIntervalMs int    `json:"updateIntervalMs"`
}

type ViewerSettings struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Defaults returns the configuration used when no settings file exists.
func Defaults() Settings {
	return Settings{
		Globe: GlobeSettings{
			DotCount:      20000,
			Radius:        1.0,
			LandThreshold: 128,
			DotColor:      "#3a4a6b",
			ActiveColor:   "#ff4f4f",
		},
		Server: ServerSettings{
			Addr:             ":8080",
			UpdateIntervalMs: 250,
		},
		Viewer: ViewerSettings{
			Width:  1280,
			Height: 720,
		},
	}
}

// Load reads the settings file at path, falling back to Defaults when the
// file does not exist. A present but malformed file is an error; silently
// ignoring it would hide typos.
func Load(path string) (Settings, error) {
	s := Defaults()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return s, nil
		}
		return s, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&s); err != nil {
		return s, fmt.Errorf("error parsing %s: %v", path, err)
	}
	return s, nil
}

// Validate checks every field the core or the serving layer would reject
// later, so bad values fail at startup with a field name attached.
func (s Settings) Validate() error {
	if s.Globe.DotCount < 2 {
		return fmt.Errorf("globe.dotCount %d: need at least 2", s.Globe.DotCount)
	}
	if s.Globe.Radius <= 0 {
		return fmt.Errorf("globe.radius %v: need a positive value", s.Globe.Radius)
	}
	if s.Globe.LandThreshold < 0 || s.Globe.LandThreshold > 255 {
		return fmt.Errorf("globe.landThreshold %d: need 0-255", s.Globe.LandThreshold)
	}
	if _, _, _, err := ParseHexColor(s.Globe.DotColor); err != nil {
		return fmt.Errorf("globe.dotColor: %v", err)
	}
	if _, _, _, err := ParseHexColor(s.Globe.ActiveColor); err != nil {
		return fmt.Errorf("globe.activeColor: %v", err)
	}
	if s.Server.UpdateIntervalMs <= 0 {
		return fmt.Errorf("server.updateIntervalMs %d: need a positive value", s.Server.UpdateIntervalMs)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr: must not be empty")
	}
	if s.Viewer.Width <= 0 || s.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size %dx%d: need positive dimensions", s.Viewer.Width, s.Viewer.Height)
	}
	return nil
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into channel values.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("color %q: need rrggbb hex", s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, fmt.Errorf("color %q: invalid hex digit", s)
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
