package offsets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const offsetsKey = "offsets"

// LoadFile reads a profile from a JSON, YAML or TOML file:
//
//	{
//	  "build": "14090",
//	  "module": "client.dll",
//	  "offsets": {
//	    "client": { "dwEntityList": "0x17CE6A0" },
//	    "pawn":   { "m_iHealth": 812 }
//	  }
//	}
//
// Values may be numbers or strings in any Go integer literal base.
func LoadFile(path string) (Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("module", "client.dll")

	if err := v.ReadInConfig(); err != nil {
		return Profile{}, fmt.Errorf("error reading offset profile: %w", err)
	}

	p := Profile{
		Build:  v.GetString("build"),
		Module: v.GetString("module"),
		Table:  Table{},
	}
	if p.Build == "" {
		p.Build = path
	}

	prefix := offsetsKey + "."
	for _, key := range v.AllKeys() {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		off, err := parseOffset(v.GetString(key))
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %s: %v", ErrInvalidOffset, name, err)
		}
		p.Table.Set(name, off)
	}

	if p.Len() == 0 {
		return Profile{}, fmt.Errorf("%w: profile %s has no offsets", ErrMissingOffset, path)
	}
	return p, nil
}

// Load returns the builtin profile when path is empty and the file's profile
// otherwise.
func Load(path string) (Profile, error) {
	if path == "" {
		return Builtin(), nil
	}
	return LoadFile(path)
}

func parseOffset(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 64)
}
