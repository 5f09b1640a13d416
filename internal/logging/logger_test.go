package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dir string, cat Category) string {
	t.Helper()
	path := filepath.Join(dir, time.Now().Format("2006-01-02")+"_"+string(cat)+".log")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected log file for %s", cat)
	return string(data)
}

func TestDisabledByDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir}))
	t.Cleanup(CloseAll)

	assert.False(t, IsDebugMode())
	assert.False(t, Get(CategoryAPI).Enabled())
	API("should not be written")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCategoryFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(Options{Dir: dir, Level: "debug", DebugMode: true}))
	t.Cleanup(CloseAll)

	for _, cat := range []Category{CategoryAPI, CategorySearch, CategoryExport, CategoryUpload, CategoryWatch, CategoryUI, CategoryConfig} {
		Get(cat).Info("hello from %s", cat)
	}
	APIDebug("GET %s", "/leads")
	CloseAll()

	for _, cat := range []Category{CategoryAPI, CategorySearch, CategoryExport, CategoryUpload, CategoryWatch, CategoryUI, CategoryConfig} {
		content := readLog(t, dir, cat)
		assert.Contains(t, content, "hello from "+string(cat))
	}
	assert.Contains(t, readLog(t, dir, CategoryAPI), "GET /leads")
	assert.Contains(t, readLog(t, dir, CategoryBoot), "logging initialized")
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{
		Dir:        dir,
		DebugMode:  true,
		Categories: map[string]bool{"ui": false},
	}))
	t.Cleanup(CloseAll)

	assert.False(t, IsCategoryEnabled(CategoryUI))
	assert.True(t, IsCategoryEnabled(CategoryAPI), "unlisted categories default on")
	UI("hidden")
	CloseAll()

	_, err := os.Stat(filepath.Join(dir, time.Now().Format("2006-01-02")+"_ui.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestLevelFilteringAndJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{Dir: dir, Level: "warn", DebugMode: true, JSONFormat: true}))
	t.Cleanup(CloseAll)

	l := WithRequestID(CategoryExport, "req-123")
	l.Info("dropped")
	l.Warn("kept %d", 1)
	CloseAll()

	content := readLog(t, dir, CategoryExport)
	assert.NotContains(t, content, "dropped")
	assert.Contains(t, content, `"msg":"kept 1"`)
	assert.Contains(t, content, `"req":"req-123"`)
	assert.Contains(t, content, `"cat":"export"`)
}

func TestDebugModeRequiresDir(t *testing.T) {
	err := Initialize(Options{DebugMode: true})
	assert.Error(t, err)
	CloseAll()
	require.NoError(t, Initialize(Options{}))
}

func TestTimer(t *testing.T) {
	require.NoError(t, Initialize(Options{}))
	elapsed := StartTimer(CategoryAPI, "op").StopWithThreshold(time.Hour)
	assert.True(t, elapsed >= 0)
}
