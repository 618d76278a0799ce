package loader

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const wageCSV = "EDUC2,INCWAGE,OCCLY,CATLY\n1,30000,10,0\n6,250000,20,1\n12,90000,10,0\n"

const timeUseJSON = `[
  {"DAY": "Monday", "AGE": "34", "SEX": "Female", "RACE": "White", "MARST": "Married",
   "HH_NUMOWNKIDS": 2, "LIVING_WITH": {"partner": "Spouse", "children": [3, 5]},
   "EDUC": "Bachelor's degree", "EMPSTAT": "Employed", "FULLPART": "Full time", "OCC": "Teacher",
   "HH_SIZE": 4, "FAMINCOME": "$75,000 to $99,999",
   "activities": [
     {"START": "04:00", "ACTIVITY3": "Sleeping", "CATEGORY": "Sleep"},
     {"START": "07:30", "ACTIVITY3": "Work, main job", "CATEGORY": "Work"}
   ]}
]`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func gzipped(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Name = name
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoadWageCSV(t *testing.T) {
	src := writeFile(t, "asec16.csv", []byte(wageCSV))
	records, err := LoadWageRecords(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 6, records[1].EDUC2)
	assert.Equal(t, 250000.0, records[1].INCWAGE)
	assert.Equal(t, "20", records[1].OCCLY)
	assert.Equal(t, "1", records[1].CATLY)
}

func TestLoadWageGzip(t *testing.T) {
	src := writeFile(t, "asec16.csv.gz", gzipped(t, "", []byte(wageCSV)))
	records, err := LoadWageRecords(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadWageJSONWithStringNumbers(t *testing.T) {
	data := `[{"EDUC2": "6", "INCWAGE": "45000", "OCCLY": 10, "CATLY": "0"}, {"EDUC2": 9, "INCWAGE": 120000.5}]`
	src := writeFile(t, "asec.json", []byte(data))
	records, err := LoadWageRecords(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 6, records[0].EDUC2)
	assert.Equal(t, 45000.0, records[0].INCWAGE)
	assert.Equal(t, "10", records[0].OCCLY)
	assert.Equal(t, 120000.5, records[1].INCWAGE)
	assert.Equal(t, "", records[1].CATLY)
}

func TestLoadWageWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"CATLY", "OCCLY", "INCWAGE", "EDUC2"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"3", "430", 61000, 7}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	src := writeFile(t, "wages.xlsx", buf.Bytes())
	records, err := LoadWageRecords(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 7, records[0].EDUC2)
	assert.Equal(t, 61000.0, records[0].INCWAGE)
	assert.Equal(t, "430", records[0].OCCLY)
}

func TestLoadWageErrors(t *testing.T) {
	_, err := LoadWageRecords(context.Background(), writeFile(t, "a.csv", []byte("EDUC2,INCWAGE\n1,2\n")))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = LoadWageRecords(context.Background(), writeFile(t, "b.csv", []byte("EDUC2,INCWAGE,OCCLY,CATLY\nx,2,3,4\n")))
	assert.ErrorContains(t, err, "row 2: EDUC2")

	_, err = LoadWageRecords(context.Background(), writeFile(t, "c.txt", []byte("hello")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadWageRecords(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	records, err := LoadWageRecords(context.Background(), writeFile(t, "empty.csv", nil))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadTimeUseZip(t *testing.T) {
	src := writeFile(t, "atus16.json.zip", zipped(t, "atus16.json", []byte(timeUseJSON)))
	records, err := LoadTimeUseRecords(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, 34, r.Age)
	assert.Equal(t, 2, r.NumOwnKids)
	assert.Equal(t, "Spouse", r.LivingWith.Partner)
	assert.Equal(t, []int{3, 5}, r.LivingWith.Children)
	require.Len(t, r.Activities, 2)
	assert.Equal(t, "07:30", r.Activities[1].Start)
	assert.Equal(t, "Work", r.Activities[1].Category)
	assert.Equal(t, 1, r.Activities[1].Num)
}

func TestLoadTimeUseRejectsCSV(t *testing.T) {
	_, err := LoadTimeUseRecords(context.Background(), writeFile(t, "atus.csv", []byte(wageCSV)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestEmptyZip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, err := w.Create("dir/")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = Read(context.Background(), writeFile(t, "empty.zip", buf.Bytes()))
	assert.ErrorIs(t, err, ErrEmptyArchive)
}

func TestLoadDictionaryJSONAndYAML(t *testing.T) {
	jsonSrc := writeFile(t, "dictionary.json", []byte(`{"EDUC2": {"0": "None", "6": "Bachelor's Degree"}, "OCCLY": {"10": "Chief executives"}, "CATLY": {"0": "Management"}}`))
	dict, err := LoadDictionary(context.Background(), jsonSrc)
	require.NoError(t, err)
	assert.Equal(t, "Chief executives", dict.Occupation("10"))
	assert.Equal(t, "Management", dict.Categories["0"])

	yamlSrc := writeFile(t, "dictionary.yaml", []byte("EDUC2:\n  \"0\": None\nOCCLY:\n  \"10\": Chief executives\nCATLY:\n  \"0\": Management\n"))
	dict, err = LoadDictionary(context.Background(), yamlSrc)
	require.NoError(t, err)
	assert.Equal(t, "None", dict.Education["0"])
}

func TestLoadCategoryActivities(t *testing.T) {
	src := writeFile(t, "activities_by_category.json", []byte(`[{"category": "Sleep", "activities": ["Sleeping", "Sleeplessness"]}]`))
	groups, err := LoadCategoryActivities(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Sleep", groups[0].Category)
	assert.Len(t, groups[0].Activities, 2)
}

func TestLoadRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/asec16.csv":
			_, _ = w.Write([]byte(wageCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records, err := LoadWageRecords(context.Background(), srv.URL+"/asec16.csv?v=1")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = LoadWageRecords(context.Background(), srv.URL+"/missing.csv")
	assert.ErrorContains(t, err, "404")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadWageRecords(ctx, srv.URL+"/asec16.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "atus16.json.zip", sourceName("https://example.com/data/atus16.json.zip?alt=media"))
	assert.Equal(t, "asec.csv", sourceName("/tmp/x/asec.csv"))
}

func TestLoadRemoteRevalidatesCachedCopy(t *testing.T) {
	hits, notModified := 0, 0
	down := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if down {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		if r.Header.Get("If-None-Match") == `"v1"` {
			notModified++
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(wageCSV))
	}))
	defer srv.Close()

	url := srv.URL + "/asec-revalidate.csv"
	t.Cleanup(func() { Downloads.Delete(url) })

	records, err := LoadWageRecords(context.Background(), url)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = LoadWageRecords(context.Background(), url)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 1, notModified)

	down = true
	records, err = LoadWageRecords(context.Background(), url)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, hits)
}
