package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kit "paydash/internal/platform/testkit"
)

func TestPrefixNesting(t *testing.T) {
	pg := New().Prefix("SERVICE_").Prefix("PAYROLL_").Prefix("PGSQL_")
	if got := pg.key("DBURL"); got != "SERVICE_PAYROLL_PGSQL_DBURL" {
		t.Fatalf("key() = %q", got)
	}
	t.Setenv("SERVICE_PAYROLL_PGSQL_DBURL", "postgres://x")
	if got := pg.MayString("DBURL", ""); got != "postgres://x" {
		t.Fatalf("nested read = %q", got)
	}
}

func TestScalars(t *testing.T) {
	c := New().Prefix("PAYDASH_CFG_")
	t.Setenv("PAYDASH_CFG_NAME", "  payroll ")
	t.Setenv("PAYDASH_CFG_SIZE", " 50 ")
	t.Setenv("PAYDASH_CFG_BADSIZE", "fifty")
	t.Setenv("PAYDASH_CFG_STRICT", "true")
	t.Setenv("PAYDASH_CFG_BADSTRICT", "nope")
	t.Setenv("PAYDASH_CFG_TIMEOUT", "150ms")
	t.Setenv("PAYDASH_CFG_BADTIMEOUT", "soon")
	t.Setenv("PAYDASH_CFG_BLANK", "   ")

	cases := []struct {
		name string
		got  any
		want any
	}{
		{"string set", c.MayString("NAME", "x"), "payroll"},
		{"string unset", c.MayString("MISSING", "def"), "def"},
		{"string blank", c.MayString("BLANK", "def"), "def"},
		{"int set", c.MayInt("SIZE", 0), 50},
		{"int unset", c.MayInt("MISSING", 9), 9},
		{"int invalid", c.MayInt("BADSIZE", 3), 3},
		{"bool set", c.MayBool("STRICT", false), true},
		{"bool unset", c.MayBool("MISSING", true), true},
		{"bool invalid", c.MayBool("BADSTRICT", false), false},
		{"duration set", c.MayDuration("TIMEOUT", time.Second), 150 * time.Millisecond},
		{"duration unset", c.MayDuration("MISSING", 5*time.Second), 5 * time.Second},
		{"duration invalid", c.MayDuration("BADTIMEOUT", time.Minute), time.Minute},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestMayIntAtLeast(t *testing.T) {
	c := New().Prefix("FLOOR_")
	t.Setenv("FLOOR_ZERO", "0")
	t.Setenv("FLOOR_OK", "200")
	if got := c.MayIntAtLeast("ZERO", 1000, 1); got != 1000 {
		t.Fatalf("below floor = %d, want default", got)
	}
	if got := c.MayIntAtLeast("ZERO", 4, 0); got != 0 {
		t.Fatalf("at floor = %d, want 0", got)
	}
	if got := c.MayIntAtLeast("OK", 1000, 1); got != 200 {
		t.Fatalf("ok = %d", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"a", "b"}
	if got := c.MayCSV("MISS", def); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("MayCSV default mismatch: %#v", got)
	}
	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	got := c.MayCSV("VALS", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("E_")

	// empty uses default and does not panic
	if got := c.MayEnum("MISS", "json", "json", "console"); got != "json" {
		t.Fatalf("MayEnum default = %q, want %q", got, "json")
	}

	t.Setenv("E_FMT", "Console")
	if got := c.MayEnum("FMT", "json", "json", "console"); got != "Console" {
		t.Fatalf("MayEnum allowed value = %q, want %q", got, "Console")
	}

	t.Setenv("E_BAD", "xml")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "json", "json", "console") })
}

func TestMayCSVAllEmptyFallsBackToDefault(t *testing.T) {
	c := New().Prefix("CSV_")
	def := []string{"fallback"}
	t.Setenv("CSV_VALS", " , ,  ,")
	got := c.MayCSV("VALS", def)
	if len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("MayCSV all-empty -> default mismatch: %#v", got)
	}
}

func TestMayEnumEmptyDefaultAndMissingEnv(t *testing.T) {
	c := New().Prefix("E_")
	if got := c.MayEnum("MISSING", "", "json", "console"); got != "" {
		t.Fatalf("MayEnum with empty def and missing env = %q, want empty string", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_NEW=from-file\nDOTENV_SET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_SET", "from-env")
	t.Setenv("DOTENV_NEW", "")
	_ = os.Unsetenv("DOTENV_NEW")

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != path {
		t.Fatalf("loaded = %v, want only %s", loaded, path)
	}
	c := New().Prefix("DOTENV_")
	if got := c.MayString("NEW", ""); got != "from-file" {
		t.Fatalf("NEW = %q, want from-file", got)
	}
	if got := c.MayString("SET", ""); got != "from-env" {
		t.Fatalf("SET = %q, existing env must win", got)
	}
}

func TestLoadDotEnvBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.env")
	if err := os.WriteFile(path, []byte("'BAD-KEY=1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDotEnv(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
