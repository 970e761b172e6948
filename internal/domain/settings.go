package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Site settings are stored as one JSON document per key.
const (
	SettingHero   = "hero"
	SettingFooter = "footer"
)

type StoredImage struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type Hero struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Image    *StoredImage `json:"image"`
}

type Footer struct {
	Text string `json:"text"`
}

type SiteSettings struct {
	Hero   Hero   `json:"hero"`
	Footer Footer `json:"footer"`
}

// DecodeSiteSettings reads the known keys out of raw. A malformed value
// leaves its section empty and is reported in the returned error; the
// other sections are still filled.
func DecodeSiteSettings(raw map[string][]byte) (SiteSettings, error) {
	var s SiteSettings
	var errs []error

	if v, ok := raw[SettingHero]; ok && len(v) > 0 {
		if err := json.Unmarshal(v, &s.Hero); err != nil {
			s.Hero = Hero{}
			errs = append(errs, fmt.Errorf("setting %q: %w", SettingHero, err))
		}
	}
	if v, ok := raw[SettingFooter]; ok && len(v) > 0 {
		if err := json.Unmarshal(v, &s.Footer); err != nil {
			s.Footer = Footer{}
			errs = append(errs, fmt.Errorf("setting %q: %w", SettingFooter, err))
		}
	}
	return s, errors.Join(errs...)
}
