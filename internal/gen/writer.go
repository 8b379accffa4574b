package gen

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	generatedHeader = "// Code generated by xmlbind-gen. DO NOT EDIT."
	unformattedExt  = ".unformatted.go"
)

// WriteFiles writes the generated files into outputDir, creating it when
// needed. Adapter files from an earlier run that are no longer produced are
// removed, as are leftover unformatted sidecars. Only files starting with the
// xmlbind-gen header are ever removed.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	keep := make(map[string]bool, len(files))

	for _, file := range files {
		keep[file.Filename] = true

		if err := os.WriteFile(filepath.Join(outputDir, file.Filename), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return pruneStale(outputDir, keep)
}

func pruneStale(dir string, keep map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading output directory: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || keep[name] || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(dir, name)

		generated, err := isGenerated(path)
		if err != nil {
			return err
		}

		if !generated {
			continue
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing stale file %s: %w", name, err)
		}
	}

	return nil
}

// isGenerated reports whether the first line of the file is the xmlbind-gen
// header.
func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		return false, nil
	}

	return bytes.Equal(bytes.TrimRight(line, "\r\n"), []byte(generatedHeader)), nil
}

// writeDebugUnformatted stores source that failed go/format next to the
// intended output, so the template error can be located.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + unformattedExt

	return os.WriteFile(filepath.Join(outDir, name), content, filePerm)
}
