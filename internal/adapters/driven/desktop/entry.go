package desktop

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/launchpad/internal/core/domain"
)

const desktopGroup = "[Desktop Entry]"

// entry is the [Desktop Entry] group of a .desktop file.
type entry struct {
	values    map[string]string
	localized map[string]map[string]string
}

// parseEntry reads the [Desktop Entry] group of r. Other groups, comments
// and malformed lines are ignored.
func parseEntry(r io.Reader) (entry, error) {
	e := entry{values: map[string]string{}, localized: map[string]map[string]string{}}
	in := false
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			in = line == desktopGroup
			continue
		}
		if !in {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if base, locale, ok := strings.Cut(key, "["); ok && strings.HasSuffix(locale, "]") {
			if e.localized[base] == nil {
				e.localized[base] = map[string]string{}
			}
			e.localized[base][strings.TrimSuffix(locale, "]")] = value
			continue
		}
		e.values[key] = value
	}
	return e, sc.Err()
}

// visible reports whether the entry is an application shown in menus.
func (e entry) visible() bool {
	if t := e.values["Type"]; t != "" && t != "Application" {
		return false
	}
	return e.values["Name"] != "" &&
		!strings.EqualFold(e.values["NoDisplay"], "true") &&
		!strings.EqualFold(e.values["Hidden"], "true")
}

// name returns the value of key for the best matching locale.
func (e entry) name(key string, locales []string) string {
	for _, l := range locales {
		if v := e.localized[key][l]; v != "" {
			return v
		}
	}
	return e.values[key]
}

// appInfo builds the catalog entry. The primary name follows locales; every
// other Name and GenericName translation becomes a localized name.
func (e entry) appInfo(path, id string, locales []string) domain.AppInfo {
	primary := e.name("Name", locales)
	var alternates []string
	for _, key := range []string{"Name", "GenericName"} {
		if v := e.values[key]; v != "" {
			alternates = append(alternates, v)
		}
		for _, l := range sortedKeys(e.localized[key]) {
			alternates = append(alternates, e.localized[key][l])
		}
	}
	return domain.AppInfo{
		Name:           primary,
		LocalizedNames: domain.DedupeNames(primary, alternates),
		Path:           path,
		BundleID:       id,
		Icon:           e.values["Icon"],
	}
}

// desktopID derives the XDG desktop file ID: the path below the applications
// directory with separators replaced by dashes and the suffix dropped.
func desktopID(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(strings.ReplaceAll(rel, string(filepath.Separator), "-"), ".desktop")
}

// Locales returns the message locale lookup order for the environment,
// most specific first, following the XDG matching rules.
func Locales(getenv func(string) string) []string {
	var raw string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if raw = getenv(key); raw != "" {
			break
		}
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return nil
	}

	raw, modifier, _ := strings.Cut(raw, "@")
	raw, _, _ = strings.Cut(raw, ".")
	lang, country, _ := strings.Cut(raw, "_")

	var out []string
	if country != "" && modifier != "" {
		out = append(out, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		out = append(out, lang+"_"+country)
	}
	if modifier != "" {
		out = append(out, lang+"@"+modifier)
	}
	return append(out, lang)
}

func defaultLocales() []string {
	return Locales(os.Getenv)
}
