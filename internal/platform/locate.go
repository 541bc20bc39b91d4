package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MediaExtensions are the container extensions yt-dlp may leave behind for
// one download, in order of preference when the reported one is missing.
var MediaExtensions = []string{".mp3", ".m4a", ".wav", ".mp4", ".webm", ".mkv", ".opus"}

// SkippedExtensions mark partial or temporary files
var SkippedExtensions = []string{".part", ".ytdl", ".temp"}

// MaxNameDifference bounds how much a truncated title may differ.
const MaxNameDifference = 10

// FindMediaFile returns filePath if it exists. Otherwise it looks in the same
// folder for the file yt-dlp most likely produced: the same title with a
// different media extension (conversion or merge changed it), or a title
// that differs only by sanitizing or truncation.
func FindMediaFile(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		return "", fmt.Errorf("file path appears to be a URL: %s", filePath)
	}

	if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	baseName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	for _, ext := range MediaExtensions {
		candidate := filepath.Join(dir, baseName+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || isTemporary(entry.Name()) || !isMediaFile(entry.Name()) {
			continue
		}
		entryBase := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if isSimilarFileName(entryBase, baseName) {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("file not found: %s", filePath)
	}

	sort.Strings(candidates)
	return candidates[0], nil
}

// isSimilarFileName reports whether two titles likely name the same download
func isSimilarFileName(name1, name2 string) bool {
	clean1 := normalizeName(name1)
	clean2 := normalizeName(name2)

	if clean1 == "" || clean2 == "" {
		return false
	}
	if clean1 == clean2 {
		return true
	}

	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}

	return false
}

// normalizeName folds the separators yt-dlp substitutes when sanitizing titles
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("_", " ", "-", " ", "＂", "\"", "｜", "|", "：", ":").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

func isTemporary(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func isMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range MediaExtensions {
		if ext == m {
			return true
		}
	}
	return false
}
