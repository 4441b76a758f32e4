package git

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ChangedFile is a file touched between a ref and the working tree.
type ChangedFile struct {
	Path    string // relative to the repository top level
	Deleted bool
}

// GetChangedFiles runs git diff in dir and returns the files changed since baseRef.
func GetChangedFiles(dir, baseRef string) ([]ChangedFile, error) {
	cmd := exec.Command("git", "diff", "-U0", baseRef)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseDiff(output)
}

// TopLevel returns the absolute path of the repository containing dir.
func TopLevel(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}
	return filepath.FromSlash(strings.TrimSpace(string(output))), nil
}

// ChangedSince returns the absolute paths of files under dir's repository that
// changed since baseRef and still exist.
func ChangedSince(dir, baseRef string) (map[string]bool, error) {
	top, err := TopLevel(dir)
	if err != nil {
		return nil, err
	}
	changes, err := GetChangedFiles(dir, baseRef)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(changes))
	for _, c := range changes {
		if c.Deleted {
			continue
		}
		set[filepath.Join(top, filepath.FromSlash(c.Path))] = true
	}
	return set, nil
}

func parseDiff(output []byte) ([]ChangedFile, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	var changes []ChangedFile
	var currentFile *ChangedFile

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "diff --git") {
			// a/path/to/file b/path/to/file; we want the b/ path (new version)
			parts := strings.Fields(line)
			if len(parts) >= 4 {
				if currentFile != nil {
					changes = append(changes, *currentFile)
				}
				currentFile = &ChangedFile{Path: strings.TrimPrefix(parts[3], "b/")}
			}
			continue
		}

		if currentFile == nil {
			continue
		}

		if strings.HasPrefix(line, "deleted file mode") || line == "+++ /dev/null" {
			currentFile.Deleted = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if currentFile != nil {
		changes = append(changes, *currentFile)
	}

	return changes, nil
}
