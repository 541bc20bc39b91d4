package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Theme variants
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyMode               = "download_mode"
	KeyAudioFormat        = "audio_format"
	KeyVideoFormat        = "video_format"
	KeyQuality            = "quality"
	KeyLanguage           = "app_language"
	KeyTheme              = "app_theme"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMode               = model.ModeAudio
	DefaultQuality            = model.QualityBest
	DefaultLanguage           = "system"
	DefaultTheme              = ThemeDark
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// DefaultDownloadDirectory returns ~/Downloads/YouTube, or a folder under
// the temp dir when the home directory is unknown.
func DefaultDownloadDirectory() string {
	dir, err := platform.DefaultMediaDir()
	if err != nil {
		return filepath.Join(os.TempDir(), platform.MediaDirName)
	}
	return dir
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		return DefaultDownloadDirectory()
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMode returns the last used mode
func (s *Settings) GetMode() model.Mode {
	mode, err := model.ParseMode(s.app.Preferences().String(KeyMode))
	if err != nil {
		return DefaultMode
	}
	return mode
}

// SetMode stores the last used mode
func (s *Settings) SetMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}
	s.app.Preferences().SetString(KeyMode, mode.String())
}

// GetFormat returns the last format used for mode, or its default.
func (s *Settings) GetFormat(mode model.Mode) model.Format {
	format, err := model.ParseFormat(s.app.Preferences().String(formatKey(mode)))
	if err != nil || !format.AllowedFor(mode) {
		return model.DefaultFormat(mode)
	}
	return format
}

// SetFormat stores format as the last one used for its mode
func (s *Settings) SetFormat(format model.Format) {
	if !format.Valid() {
		return
	}
	s.app.Preferences().SetString(formatKey(format.Mode()), format.String())
}

// GetQuality returns the last used quality
func (s *Settings) GetQuality() model.Quality {
	quality, err := model.ParseQuality(s.app.Preferences().String(KeyQuality))
	if err != nil {
		return DefaultQuality
	}
	return quality
}

// SetQuality stores the last used quality
func (s *Settings) SetQuality(quality model.Quality) {
	if !quality.Valid() {
		return
	}
	s.app.Preferences().SetString(KeyQuality, quality.String())
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetTheme returns "dark" or "light"
func (s *Settings) GetTheme() string {
	if s.app.Preferences().String(KeyTheme) == ThemeLight {
		return ThemeLight
	}
	return DefaultTheme
}

// SetTheme stores the theme variant
func (s *Settings) SetTheme(variant string) {
	if variant != ThemeLight {
		variant = ThemeDark
	}
	s.app.Preferences().SetString(KeyTheme, variant)
}

// ToggleTheme flips between dark and light and returns the new variant
func (s *Settings) ToggleTheme() string {
	next := ThemeLight
	if s.GetTheme() == ThemeLight {
		next = ThemeDark
	}
	s.SetTheme(next)
	return next
}

// GetAutoRevealOnComplete returns whether to reveal completed downloads
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func formatKey(mode model.Mode) string {
	if mode == model.ModeVideo {
		return KeyVideoFormat
	}
	return KeyAudioFormat
}
