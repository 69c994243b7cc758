package assets

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Library resolves asset names to their metadata. Durations are authoritative
// here so timeline math never needs to open an audio file.
type Library struct {
	assets map[string]Asset
}

// DefaultLibrary returns the built-in asset set used when no manifest is
// configured.
func DefaultLibrary() *Library {
	lib := &Library{assets: make(map[string]Asset)}
	for _, asset := range []Asset{
		{Name: "Podcast Intro", Duration: 8, Source: "library://music/podcast-intro"},
		{Name: "Podcast Outro", Duration: 10, Source: "library://music/podcast-outro"},
		{Name: "Jingle Sting", Duration: 3, Source: "library://music/jingle-sting"},
		{Name: "Background Bed", Duration: 20, Source: "library://music/background-bed"},
		{Name: "Cafe Ambience", Duration: 30, Source: "library://ambient/cafe"},
		{Name: "Office Ambience", Duration: 30, Source: "library://ambient/office"},
		{Name: "Nature Sounds", Duration: 30, Source: "library://ambient/nature"},
		{Name: "City Traffic", Duration: 30, Source: "library://ambient/city"},
		{Name: "Tech Lab Hum", Duration: 30, Source: "library://ambient/tech-lab"},
		{Name: "Coffee Sip", Duration: 1.5, Source: "library://sfx/coffee-sip"},
		{Name: "Breath", Duration: 1, Source: "library://sfx/breath"},
	} {
		lib.assets[normalizeName(asset.Name)] = asset
	}
	return lib
}

// LoadManifest reads a TOML asset manifest and merges it over the default
// library. Manifest entries win on name collisions.
func LoadManifest(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset manifest: %w", err)
	}

	var manifest struct {
		Assets []Asset `toml:"assets"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse asset manifest %s: %w", path, err)
	}

	lib := DefaultLibrary()
	for _, asset := range manifest.Assets {
		if strings.TrimSpace(asset.Name) == "" {
			return nil, fmt.Errorf("asset manifest %s: entry with empty name", path)
		}
		if err := validateAsset(asset); err != nil {
			return nil, fmt.Errorf("asset manifest %s: %w", path, err)
		}
		lib.assets[normalizeName(asset.Name)] = asset
	}
	return lib, nil
}

// Lookup finds an asset by name. Matching ignores case and surrounding
// whitespace.
func (l *Library) Lookup(name string) (Asset, bool) {
	asset, ok := l.assets[normalizeName(name)]
	return asset, ok
}

// Names lists the library contents sorted alphabetically.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.assets))
	for _, asset := range l.assets {
		names = append(names, asset.Name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
