package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "a", "b")

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if info, err := os.Stat(testDir); err != nil || !info.IsDir() {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectoryIfNotExists(filepath.Join(file, "sub")); err == nil {
		t.Error("expected error when a file blocks the path")
	}
	if err := CreateDirectoryIfNotExists(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestDefaultMediaDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	dir, err := DefaultMediaDir()
	if err != nil {
		t.Fatalf("DefaultMediaDir error: %v", err)
	}

	want := filepath.Join(home, "Downloads", "YouTube")
	if dir != want {
		t.Errorf("DefaultMediaDir() = %s, want %s", dir, want)
	}
}

func TestRevealFile_NonExistentFile(t *testing.T) {
	err := RevealFile(filepath.Join(t.TempDir(), "nonexistent.mp3"))
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestFindMediaFile(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	exact := touch("Exact Title.mp3")
	converted := touch("Converted Song.mp3")
	sanitized := touch("Some_Video_Title.webm")
	touch("Partial Clip.mp4.part")
	touch("notes.txt")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"exact", exact, exact, false},
		{"extension changed", filepath.Join(dir, "Converted Song.webm"), converted, false},
		{"sanitized title", filepath.Join(dir, "Some Video Title.mp4"), sanitized, false},
		{"only partial", filepath.Join(dir, "Partial Clip.mp4"), "", true},
		{"not media", filepath.Join(dir, "notes.mp3"), "", true},
		{"empty", "", "", true},
		{"url", "https://youtu.be/abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindMediaFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("FindMediaFile(%q) = %q, want error", tt.path, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindMediaFile(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FindMediaFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsSimilarFileName(t *testing.T) {
	tests := []struct {
		name1, name2 string
		expected     bool
	}{
		{"test", "test", true},
		{"test", "-test", true},
		{"test", "test_", true},
		{"My Song", "my_song", true},
		{"test", "other", false},
		{"test_video", "test_video_long", true},
		{"test_video_very_long_name", "test_video", false},
		{"", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name1+"_"+tt.name2, func(t *testing.T) {
			if got := isSimilarFileName(tt.name1, tt.name2); got != tt.expected {
				t.Errorf("isSimilarFileName(%q, %q) = %v, expected %v",
					tt.name1, tt.name2, got, tt.expected)
			}
		})
	}
}
