// Package atlas describes the supported maps: their size, background image,
// calibration and static points of interest.
package atlas

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"logmap/internal/geom"
)

// Profile is the versionable per-map calibration data.
type Profile struct {
	Name        string           `json:"name"`
	Size        float64          `json:"size"`
	Image       string           `json:"image"`
	Calibration geom.Calibration `json:"calibration"`
}

var ErrUnknownMap = errors.New("atlas: unknown map")

// UnmarshalJSON starts from the identity calibration for the profile size, so
// an entry may leave out the calibration or any of its fields.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var head struct {
		Size float64 `json:"size"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	v := plain{Calibration: geom.DefaultCalibration(head.Size)}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Profile(v)
	return nil
}

// Builtin returns the stock profiles with identity calibration.
func Builtin() []Profile {
	mk := func(name string, size float64, image string) Profile {
		return Profile{Name: name, Size: size, Image: image, Calibration: geom.DefaultCalibration(size)}
	}
	return []Profile{
		mk("Chernarus", 15360, "map_chernarus.png"),
		mk("Livonia", 12800, "map_livonia.png"),
		mk("Sakhal", 8192, "map_sakhal.png"),
	}
}

// Lookup finds a profile by name.
func Lookup(profiles []Profile, name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownMap, name)
}

// Names lists profile names in the given order.
func Names(profiles []Profile) []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.Name
	}
	return out
}

// LoadProfiles reads a JSON profile file and merges it over Builtin. Entries
// with a known name replace the stock profile; new names are appended in
// alphabetical order. A map size of zero in the calibration is filled from
// the profile size.
func LoadProfiles(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("atlas: read %s: %w", path, err)
	}
	var file []Profile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("atlas: parse %s: %w", path, err)
	}
	out := Builtin()
	var extra []Profile
	for _, p := range file {
		if p.Name == "" {
			return nil, fmt.Errorf("atlas: %s: profile without name", path)
		}
		if p.Calibration.MapSize == 0 {
			p.Calibration.MapSize = p.Size
		}
		if err := p.Calibration.Validate(); err != nil {
			return nil, fmt.Errorf("atlas: %s: %s: %w", path, p.Name, err)
		}
		if p.Image != "" && !filepath.IsAbs(p.Image) {
			p.Image = filepath.Join(filepath.Dir(path), p.Image)
		}
		replaced := false
		for i := range out {
			if out[i].Name == p.Name {
				out[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })
	return append(out, extra...), nil
}

// SaveProfiles writes profiles as indented JSON, replacing path atomically.
func SaveProfiles(path string, profiles []Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("atlas: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("atlas: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("atlas: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atlas: replace %s: %w", path, err)
	}
	return nil
}

// Update returns a copy of profiles with the named profile's calibration set.
func Update(profiles []Profile, name string, c geom.Calibration) ([]Profile, error) {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	for i := range out {
		if out[i].Name == name {
			out[i].Calibration = c
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMap, name)
}
