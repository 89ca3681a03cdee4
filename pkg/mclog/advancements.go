package mclog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mclog/mclog-go/internal/logfinder"
	"github.com/mclog/mclog-go/internal/parser"
	"github.com/mclog/mclog-go/internal/safefile"
)

// MaxAdvancementFileSize bounds a single advancement record file (4MB).
const MaxAdvancementFileSize = 4 * 1024 * 1024

// Criterion time layouts, with and without a zone offset.
const (
	criterionLayout       = "2006-01-02 15:04:05 -0700"
	criterionLayoutNoZone = "2006-01-02 15:04:05"
)

// advancementRecord is one entry of a player's advancement file.
type advancementRecord struct {
	Done     *bool             `json:"done"`
	Criteria map[string]string `json:"criteria"`
}

// readAdvancements reads {sourceDir}/advancements/*.json.
//
// present is false when the directory does not exist. Files that cannot be
// read or are not JSON objects are skipped with a warning; records that are
// incomplete or carry unparseable times are skipped silently.
func readAdvancements(sourceDir, server string, cfg *ingestConfig) (advs []Advancement, present bool, err error) {
	dir := filepath.Join(sourceDir, logfinder.AdvancementsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &FileError{Op: "list", Path: dir, Err: err}
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		path := filepath.Join(dir, name)
		id, err := parser.NormalizeID(strings.TrimSuffix(name, ".json"))
		if err != nil {
			cfg.logger.Warn("skipping advancement file with non-uuid name", "path", path)
			continue
		}

		data, err := safefile.ReadAll(path, MaxAdvancementFileSize)
		if err != nil {
			cfg.logger.Warn("skipping unreadable advancement file", "error", &FileError{Op: "read", Path: path, Err: err})
			continue
		}
		parsed, err := parseAdvancementFile(data, cfg.location)
		if err != nil {
			cfg.logger.Warn("skipping malformed advancement file", "error", &FileError{Op: "decode", Path: path, Err: err})
			continue
		}
		for adv, ts := range parsed {
			if cfg.advancementYear != 0 && ts.Year() != cfg.advancementYear {
				continue
			}
			advs = append(advs, Advancement{Server: server, ID: id, Name: adv, Timestamp: ts})
		}
	}

	sort.Slice(advs, func(i, j int) bool {
		if advs[i].ID != advs[j].ID {
			return advs[i].ID < advs[j].ID
		}
		return advs[i].Name < advs[j].Name
	})
	return advs, true, nil
}

// parseAdvancementFile returns the completion time of every finished,
// non-recipe advancement in data.
func parseAdvancementFile(data []byte, loc *time.Location) (map[string]time.Time, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]time.Time)
	for name, body := range raw {
		if name == "DataVersion" || strings.Contains(name, ":recipes/") {
			continue
		}
		var rec advancementRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			continue
		}
		if rec.Done == nil || !*rec.Done || len(rec.Criteria) == 0 {
			continue
		}
		done, ok := completionTime(rec.Criteria, loc)
		if !ok {
			continue
		}
		out[name] = done
	}
	return out, nil
}

// completionTime is the latest criterion time.
func completionTime(criteria map[string]string, loc *time.Location) (time.Time, bool) {
	var latest time.Time
	for _, v := range criteria {
		ts, err := parseCriterionTime(v, loc)
		if err != nil {
			return time.Time{}, false
		}
		if ts.After(latest) {
			latest = ts
		}
	}
	return latest, !latest.IsZero()
}

func parseCriterionTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if ts, err := time.Parse(criterionLayout, v); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(criterionLayoutNoZone, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("criterion time %q: %w", v, err)
	}
	return ts, nil
}
