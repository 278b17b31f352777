package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Dir is the directory of the default configs, relative to the repository root.
const Dir = "infra/config"

// Load reads the json config at the given path into v.
func Load(path string, v interface{}) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "could not read config from %s", path)
	}
	err = json.Unmarshal(b, v)
	if err != nil {
		return errors.Wrapf(err, "could not unmarshal config from %s", path)
	}
	log.Info().Str("path", path).Msg("loaded config")
	return nil
}

// MustLoad loads the default config for the given key
func MustLoad(key string, v interface{}) {
	if err := Load(filepath.Join(Dir, fmt.Sprintf("%s.json", key)), v); err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}
}
