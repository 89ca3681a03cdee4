// Package logfinder discovers server sources and orders their rotated log files.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// Directory and file conventions under a source.
const (
	LogsDir         = "logs"
	AdvancementsDir = "advancements"
	dateLayout      = "2006-01-02"
)

// Sentinel errors.
var (
	ErrRootNotFound = errors.New("data root not found")
	ErrNoSources    = errors.New("no source directories found")
)

// logNamePattern matches rotated log names: "2024-01-15-3.log.gz".
var logNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(\d+)\.log\.gz$`)

// Source is one server's directory.
type Source struct {
	Name string
	Dir  string
}

// LogFile is a rotated log resource with the date and index from its name.
type LogFile struct {
	Path  string
	Name  string
	Date  time.Time // midnight in the location passed to LogFiles
	Index int
}

// FirstStampFunc returns the time of day of the first timestamped line in a
// log file, or false when there is none.
type FirstStampFunc func(path string) (time.Duration, bool)

// FindSources returns every subdirectory of root, sorted by name.
//
// Returns ErrRootNotFound if root does not exist or is not a directory, and
// ErrNoSources if it contains no subdirectories.
func FindSources(root string) ([]Source, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading data root: %w", err)
	}

	var sources []Source
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sources = append(sources, Source{Name: e.Name(), Dir: filepath.Join(root, e.Name())})
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, root)
	}

	// os.ReadDir already sorts by filename; keep the guarantee explicit.
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })
	return sources, nil
}

// ParseLogName extracts the date and same-day index from a log file name.
func ParseLogName(name string, loc *time.Location) (time.Time, int, bool) {
	match := logNamePattern.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, 0, false
	}
	date, err := time.ParseInLocation(dateLayout, match[1], loc)
	if err != nil {
		return time.Time{}, 0, false
	}
	index, err := strconv.Atoi(match[2])
	if err != nil {
		return time.Time{}, 0, false
	}
	return date, index, true
}

// LogFiles returns the source's rotated logs in chronological order.
//
// Files are grouped by the date in their name. Within a date they are first
// put in index order; the slots held by files with a first timestamp are then
// refilled with those same files sorted by that timestamp, while files
// without one stay where index order put them. firstStamp may be nil, in
// which case index order is final.
//
// A missing logs directory yields no files and no error. Names that do not
// follow the rotation convention are skipped.
func LogFiles(sourceDir string, loc *time.Location, firstStamp FirstStampFunc) ([]LogFile, error) {
	if loc == nil {
		loc = time.UTC
	}
	dir := filepath.Join(sourceDir, LogsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading logs directory: %w", err)
	}

	byDate := make(map[string][]LogFile)
	var dates []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		date, index, ok := ParseLogName(e.Name(), loc)
		if !ok {
			continue
		}
		key := date.Format(dateLayout)
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], LogFile{
			Path:  filepath.Join(dir, e.Name()),
			Name:  e.Name(),
			Date:  date,
			Index: index,
		})
	}
	sort.Strings(dates)

	var ordered []LogFile
	for _, key := range dates {
		ordered = append(ordered, orderDay(byDate[key], firstStamp)...)
	}
	return ordered, nil
}

// stamped holds a file and its cached first timestamp so each file is read
// at most once while sorting.
type stamped struct {
	file  LogFile
	stamp time.Duration
}

func orderDay(files []LogFile, firstStamp FirstStampFunc) []LogFile {
	sort.SliceStable(files, func(i, j int) bool { return files[i].Index < files[j].Index })
	if firstStamp == nil || len(files) < 2 {
		return files
	}

	var slots []int
	var withStamp []stamped
	for i, f := range files {
		if ts, ok := firstStamp(f.Path); ok {
			slots = append(slots, i)
			withStamp = append(withStamp, stamped{file: f, stamp: ts})
		}
	}
	sort.SliceStable(withStamp, func(i, j int) bool { return withStamp[i].stamp < withStamp[j].stamp })

	out := make([]LogFile, len(files))
	copy(out, files)
	for k, slot := range slots {
		out[slot] = withStamp[k].file
	}
	return out
}
