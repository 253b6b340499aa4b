package chip8

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

/// Quirks select between behaviors that differ across CHIP-8 interpreters.
/// The zero value is the modern convention.
///
type Quirks struct {
	/// ShiftUsesVy shifts Vy into Vx for 8XY6 and 8XYE (COSMAC VIP).
	///
	ShiftUsesVy bool `toml:"shift_uses_vy"`

	/// JumpUsesVx makes BNNN jump to NNN + VX instead of NNN + V0 (CHIP-48).
	///
	JumpUsesVx bool `toml:"jump_uses_vx"`

	/// LoadStoreIncrementsI leaves I past the last register after FX55 and
	/// FX65 (COSMAC VIP).
	///
	LoadStoreIncrementsI bool `toml:"load_store_increments_i"`

	/// LogicResetsVF clears VF after 8XY1, 8XY2 and 8XY3 (COSMAC VIP).
	///
	LogicResetsVF bool `toml:"logic_resets_vf"`

	/// ClipSprites clips sprites at the right and bottom edges instead of
	/// wrapping them. The starting coordinate always wraps.
	///
	ClipSprites bool `toml:"clip_sprites"`

	/// IndexOverflow sets VF when FX1E moves I past 0xFFF (Amiga).
	///
	IndexOverflow bool `toml:"index_overflow"`
}

var profiles = map[string]Quirks{
	"modern": {},
	"cosmac": {
		ShiftUsesVy:          true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
		ClipSprites:          true,
	},
	"chip48": {
		JumpUsesVx:  true,
		ClipSprites: true,
	},
}

/// QuirksProfile returns the named set of quirks.
///
func QuirksProfile(name string) (Quirks, error) {
	if q, ok := profiles[strings.ToLower(name)]; ok {
		return q, nil
	}

	return Quirks{}, fmt.Errorf("%w: %s (valid: %s)", ErrUnknownQuirks, name, strings.Join(QuirksProfiles(), ", "))
}

/// QuirksProfiles returns the sorted names of all quirk profiles.
///
func QuirksProfiles() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

/// Set turns the quirk with the given toml key on or off.
///
func (q *Quirks) Set(key string, on bool) error {
	v := reflect.ValueOf(q).Elem()

	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).Tag.Get("toml") == key {
			v.Field(i).SetBool(on)
			return nil
		}
	}

	return fmt.Errorf("%w: no quirk named %s", ErrUnknownQuirks, key)
}
