package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/util"
)

// datasetExtensions are the file suffixes the loader can read.
var datasetExtensions = []string{".csv", ".json", ".yaml", ".yml", ".xlsx", ".zip", ".gz"}

// Kind is the role a file plays for the dashboards.
type Kind string

const (
	KindUnknown        Kind = ""
	KindWageData       Kind = "wage-data"
	KindWageDictionary Kind = "wage-dictionary"
	KindTimeUseData    Kind = "timeuse-data"
	KindActivities     Kind = "activities"
)

// FileScanner finds dataset files below a directory
type FileScanner struct {
	baseDir    string
	extensions []string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir:    baseDir,
		extensions: datasetExtensions,
	}
}

// Scan walks the directory and returns every dataset file, sorted.
// Unreadable entries are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}
		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if s.matches(path) {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)

	util.LogDebug(fmt.Sprintf("Dataset scan completed: duration %v, scanned %d directories, %d files, found %d datasets",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, err
}

func (s *FileScanner) matches(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range s.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindDatasets lists the dataset files below dir.
func FindDatasets(dir string) ([]string, error) {
	return NewFileScanner(dir).Scan()
}

// Classify guesses a file's role from its name, following the survey export
// naming: asec*/wage* data, *dictionary*, atus*/timeuse* data and
// *activities_by_category*.
func Classify(path string) Kind {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "activities_by_category") || strings.HasPrefix(name, "activities"):
		return KindActivities
	case strings.Contains(name, "dictionary"):
		return KindWageDictionary
	case strings.HasPrefix(name, "atus") || strings.HasPrefix(name, "timeuse"):
		return KindTimeUseData
	case strings.HasPrefix(name, "asec") || strings.HasPrefix(name, "wage"):
		return KindWageData
	}
	return KindUnknown
}

// Sources are the files each dashboard loads from.
type Sources struct {
	WageData       string `yaml:"wage_data"`
	WageDictionary string `yaml:"wage_dictionary"`
	TimeUseData    string `yaml:"timeuse_data"`
	Activities     string `yaml:"activities"`
}

// Discover scans dir and picks the first file of each kind.
func Discover(dir string) (Sources, error) {
	files, err := FindDatasets(dir)
	if err != nil {
		return Sources{}, err
	}
	var src Sources
	for _, f := range files {
		slot := src.slot(Classify(f))
		if slot != nil && *slot == "" {
			*slot = f
		}
	}
	return src, nil
}

// Merge fills the empty fields of s from other.
func (s Sources) Merge(other Sources) Sources {
	for _, k := range []Kind{KindWageData, KindWageDictionary, KindTimeUseData, KindActivities} {
		dst, from := s.slot(k), other.slot(k)
		if *dst == "" {
			*dst = *from
		}
	}
	return s
}

// Paths returns the configured local paths, skipping remote and empty ones.
func (s Sources) Paths() []string {
	var out []string
	for _, p := range []string{s.WageData, s.WageDictionary, s.TimeUseData, s.Activities} {
		if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Sources) slot(k Kind) *string {
	switch k {
	case KindWageData:
		return &s.WageData
	case KindWageDictionary:
		return &s.WageDictionary
	case KindTimeUseData:
		return &s.TimeUseData
	case KindActivities:
		return &s.Activities
	}
	return nil
}
