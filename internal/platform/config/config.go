// Package config reads service settings from the environment
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"paydash/internal/platform/logger"
)

// Conf is a namespaced view over environment variables, e.g. Prefix("SERVICE_PAYROLL_PGSQL_")
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value of key, blank counts as unset
func (c Conf) lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.key(key)))
	return v, v != ""
}

// may parses key with parse, falling back to def when unset or unparsable
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %T setting; using default", def)
		return def
	}
	return v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return def
}

// MayInt returns key as an int, invalid values log and yield def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, strconv.Atoi)
}

// MayIntAtLeast is MayInt with a floor, values under lo log and yield def
func (c Conf) MayIntAtLeast(key string, def, lo int) int {
	n := c.MayInt(key, def)
	if n < lo {
		logger.Get().Warn().Str("key", c.key(key)).Int("value", n).Int("min", lo).Int("default", def).
			Msg("setting below minimum; using default")
		return def
	}
	return n
}

// MayBool returns key as a bool, invalid values log and yield def
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, strconv.ParseBool)
}

// MayDuration returns key as a duration like "15s", invalid values log and yield def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blank items
// def is returned when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns key when it is one of allowed (case insensitive) or def when unset
// any other value is a deployment error and panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
