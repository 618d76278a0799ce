package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		fullPath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		require.NoError(t, os.WriteFile(fullPath, []byte("content"), 0644))
	}
}

func TestNewFileScanner(t *testing.T) {
	scanner := NewFileScanner("/tmp/test")
	assert.NotNil(t, scanner)
	assert.Equal(t, "/tmp/test", scanner.baseDir)
	assert.Equal(t, datasetExtensions, scanner.extensions)
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()
	require.NoError(t, err)
	assert.Empty(t, files, "Empty directory should return no files")
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist").Scan()
	require.NoError(t, err, "Scanner should handle non-existent directory gracefully")
	assert.Empty(t, files)
}

func TestFindDatasets(t *testing.T) {
	tempDir := t.TempDir()
	createFiles(t, tempDir,
		"asec16_employed_fulltime_10k.csv",
		"asec16_data_dictionary.json",
		"timeuse/atus16.json.zip",
		"timeuse/atus16_activities_by_category.json",
		"readme.txt",
		"notes.md",
		"WAGES.XLSX",
		"old/asec.csv.gz",
	)

	files, err := FindDatasets(tempDir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "WAGES.XLSX"),
		filepath.Join(tempDir, "asec16_data_dictionary.json"),
		filepath.Join(tempDir, "asec16_employed_fulltime_10k.csv"),
		filepath.Join(tempDir, "old/asec.csv.gz"),
		filepath.Join(tempDir, "timeuse/atus16.json.zip"),
		filepath.Join(tempDir, "timeuse/atus16_activities_by_category.json"),
	}, files)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"data/asec16_employed_fulltime_10k.csv", KindWageData},
		{"wages.xlsx", KindWageData},
		{"asec16_data_dictionary.json", KindWageDictionary},
		{"atus16.json.zip", KindTimeUseData},
		{"atus16_activities_by_category.json", KindActivities},
		{"activities.yaml", KindActivities},
		{"readme.csv", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestDiscoverAndMerge(t *testing.T) {
	tempDir := t.TempDir()
	createFiles(t, tempDir,
		"asec16.csv",
		"asec16_data_dictionary.json",
		"atus16.json.zip",
		"atus16_activities_by_category.json",
	)

	src, err := Discover(tempDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "asec16.csv"), src.WageData)
	assert.Equal(t, filepath.Join(tempDir, "asec16_data_dictionary.json"), src.WageDictionary)
	assert.Equal(t, filepath.Join(tempDir, "atus16.json.zip"), src.TimeUseData)
	assert.Equal(t, filepath.Join(tempDir, "atus16_activities_by_category.json"), src.Activities)

	configured := Sources{WageData: "https://example.com/asec.csv"}
	merged := configured.Merge(src)
	assert.Equal(t, "https://example.com/asec.csv", merged.WageData)
	assert.Equal(t, src.TimeUseData, merged.TimeUseData)
	assert.Len(t, merged.Paths(), 3)
}
