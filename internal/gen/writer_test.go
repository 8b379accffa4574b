package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_PrunesStaleGenerated(t *testing.T) {
	dir := t.TempDir()

	generated := generatedHeader + "\n\npackage rssxml\n"
	seed := map[string]string{
		"old_xml.go":              generated,
		"feed_xml.unformatted.go": generated,
		"handwritten.go":          "package rssxml\n",
		"old_xml_test.go":         generated,
		"notes.txt":               generated,
	}

	for name, content := range seed {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), filePerm))
	}

	files := []GeneratedFile{{Filename: "feed_xml.go", Content: []byte(generated)}}
	require.NoError(t, WriteFiles(files, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.ElementsMatch(t, []string{"feed_xml.go", "handwritten.go", "old_xml_test.go", "notes.txt"}, names)
}

func TestWriteFiles_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	require.NoError(t, WriteFiles([]GeneratedFile{{Filename: "a_xml.go", Content: []byte("package out\n")}}, dir))

	got, err := os.ReadFile(filepath.Join(dir, "a_xml.go"))
	require.NoError(t, err)
	assert.Equal(t, "package out\n", string(got))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "feed_xml.go", []byte("package x\nfunc {")))
	require.NoError(t, writeDebugUnformatted("", "feed_xml.go", nil))

	got, err := os.ReadFile(filepath.Join(dir, "feed_xml.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package x\nfunc {", string(got))
}
