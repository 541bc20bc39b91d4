package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyDownload           = "download"
	KeyDownloading        = "downloading"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyDownloadDirectory  = "download_directory"
	KeyAutoReveal         = "auto_reveal"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyOpenFolder         = "open_folder"
	KeyShowLastFile       = "show_last_file"
	KeyEnterURL           = "enter_url"
	KeyMode               = "mode"
	KeyAudio              = "audio"
	KeyVideo              = "video"
	KeyFormat             = "format"
	KeyQuality            = "quality"
	KeyQualityBest        = "quality_best"
	KeyQualityHigh        = "quality_high"
	KeyQualityMedium      = "quality_medium"
	KeyQualityLow         = "quality_low"
	KeyNeedsConverter     = "needs_converter"
	KeyHistory            = "history"
	KeyHistoryEmpty       = "history_empty"
	KeyReady              = "ready"
	KeyFetching           = "fetching"
	KeyConverting         = "converting"
	KeyDone               = "done"
	KeyFailed             = "failed"
	KeySettingsSaved      = "settings_saved"
	KeyDownloadCompleted  = "download_completed"
	KeySavedTo            = "saved_to"
	KeyDownloadFailed     = "download_failed"
	KeyDownloadInProgress = "download_in_progress"
	KeyWaitForDownload    = "wait_for_download"
	KeyMissingConverter   = "missing_converter"
	KeyUseFallback        = "use_fallback"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyToggleTheme        = "toggle_theme"
	KeyRetrieverChecking  = "retriever_checking"
	KeyRetrieverReady     = "retriever_ready"
	KeyRetrieverMissing   = "retriever_missing"
	KeyConverterReady     = "converter_ready"
	KeyConverterMissing   = "converter_missing"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the OS locale when
// it is one of the translated languages.
func (l *Localization) SetLanguage(language string) {
	if language == "system" || language == "" {
		language = systemLanguage()
	}

	if _, exists := l.texts[language]; exists {
		l.currentLanguage = language
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// Format returns the localized text for key with args substituted
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func systemLanguage() string {
	locale := strings.ToLower(lang.SystemLocale().LanguageString())
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "YT Grabber",
		KeyDownload:           "Download",
		KeyDownloading:        "Downloading…",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyDownloadDirectory:  "Save to",
		KeyAutoReveal:         "Show file when done",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyOpenFolder:         "Open folder",
		KeyShowLastFile:       "Show file",
		KeyEnterURL:           "Paste a YouTube URL (https://youtube.com/watch?v=...)",
		KeyMode:               "Mode",
		KeyAudio:              "Audio",
		KeyVideo:              "Video",
		KeyFormat:             "Format",
		KeyQuality:            "Quality",
		KeyQualityBest:        "Best",
		KeyQualityHigh:        "High",
		KeyQualityMedium:      "Medium",
		KeyQualityLow:         "Low",
		KeyNeedsConverter:     "%s (needs ffmpeg)",
		KeyHistory:            "Recent downloads",
		KeyHistoryEmpty:       "Nothing downloaded yet",
		KeyReady:              "Ready",
		KeyFetching:           "Downloading… %d%%",
		KeyConverting:         "Converting… %d%%",
		KeyDone:               "Done",
		KeyFailed:             "Failed",
		KeySettingsSaved:      "Settings saved",
		KeyDownloadCompleted:  "Download completed",
		KeySavedTo:            "Saved to %s",
		KeyDownloadFailed:     "Download failed",
		KeyDownloadInProgress: "Download in progress",
		KeyWaitForDownload:    "Please wait for the current download to finish.",
		KeyMissingConverter:   "ffmpeg not found",
		KeyUseFallback:        "%s requires ffmpeg, which was not found.\n\nDownload as %s instead?",
		KeyErrorOpeningFile:   "Error opening file",
		KeyPleaseEnterURL:     "Please enter a URL",
		KeyToggleTheme:        "Toggle theme",
		KeyRetrieverChecking:  "Checking yt-dlp…",
		KeyRetrieverReady:     "yt-dlp ready",
		KeyRetrieverMissing:   "yt-dlp not available",
		KeyConverterReady:     "ffmpeg available",
		KeyConverterMissing:   "ffmpeg not found (MP3/WAV/MP4 unavailable)",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "YT Grabber",
		KeyDownload:           "Скачать",
		KeyDownloading:        "Загрузка…",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyDownloadDirectory:  "Сохранять в",
		KeyAutoReveal:         "Показывать файл после загрузки",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeyOpenFolder:         "Открыть папку",
		KeyShowLastFile:       "Показать файл",
		KeyEnterURL:           "Вставьте ссылку YouTube (https://youtube.com/watch?v=...)",
		KeyMode:               "Режим",
		KeyAudio:              "Аудио",
		KeyVideo:              "Видео",
		KeyFormat:             "Формат",
		KeyQuality:            "Качество",
		KeyQualityBest:        "Лучшее",
		KeyQualityHigh:        "Высокое",
		KeyQualityMedium:      "Среднее",
		KeyQualityLow:         "Низкое",
		KeyNeedsConverter:     "%s (нужен ffmpeg)",
		KeyHistory:            "Последние загрузки",
		KeyHistoryEmpty:       "Загрузок пока нет",
		KeyReady:              "Готово к работе",
		KeyFetching:           "Загрузка… %d%%",
		KeyConverting:         "Конвертация… %d%%",
		KeyDone:               "Готово",
		KeyFailed:             "Ошибка",
		KeySettingsSaved:      "Настройки сохранены",
		KeyDownloadCompleted:  "Загрузка завершена",
		KeySavedTo:            "Сохранено в %s",
		KeyDownloadFailed:     "Не удалось скачать",
		KeyDownloadInProgress: "Идёт загрузка",
		KeyWaitForDownload:    "Дождитесь окончания текущей загрузки.",
		KeyMissingConverter:   "ffmpeg не найден",
		KeyUseFallback:        "Для %s нужен ffmpeg, но он не найден.\n\nСкачать в формате %s?",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeyPleaseEnterURL:     "Введите ссылку",
		KeyToggleTheme:        "Сменить тему",
		KeyRetrieverChecking:  "Проверка yt-dlp…",
		KeyRetrieverReady:     "yt-dlp готов",
		KeyRetrieverMissing:   "yt-dlp недоступен",
		KeyConverterReady:     "ffmpeg доступен",
		KeyConverterMissing:   "ffmpeg не найден (MP3/WAV/MP4 недоступны)",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "YT Grabber",
		KeyDownload:           "Baixar",
		KeyDownloading:        "Baixando…",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyDownloadDirectory:  "Salvar em",
		KeyAutoReveal:         "Mostrar arquivo ao concluir",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Procurar",
		KeyOpenFolder:         "Abrir pasta",
		KeyShowLastFile:       "Mostrar arquivo",
		KeyEnterURL:           "Cole um link do YouTube (https://youtube.com/watch?v=...)",
		KeyMode:               "Modo",
		KeyAudio:              "Áudio",
		KeyVideo:              "Vídeo",
		KeyFormat:             "Formato",
		KeyQuality:            "Qualidade",
		KeyQualityBest:        "Máxima",
		KeyQualityHigh:        "Alta",
		KeyQualityMedium:      "Média",
		KeyQualityLow:         "Baixa",
		KeyNeedsConverter:     "%s (requer ffmpeg)",
		KeyHistory:            "Downloads recentes",
		KeyHistoryEmpty:       "Nenhum download ainda",
		KeyReady:              "Pronto",
		KeyFetching:           "Baixando… %d%%",
		KeyConverting:         "Convertendo… %d%%",
		KeyDone:               "Concluído",
		KeyFailed:             "Falhou",
		KeySettingsSaved:      "Configurações salvas",
		KeyDownloadCompleted:  "Download concluído",
		KeySavedTo:            "Salvo em %s",
		KeyDownloadFailed:     "Falha no download",
		KeyDownloadInProgress: "Download em andamento",
		KeyWaitForDownload:    "Aguarde o download atual terminar.",
		KeyMissingConverter:   "ffmpeg não encontrado",
		KeyUseFallback:        "%s requer ffmpeg, que não foi encontrado.\n\nBaixar como %s?",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeyPleaseEnterURL:     "Informe um link",
		KeyToggleTheme:        "Alternar tema",
		KeyRetrieverChecking:  "Verificando yt-dlp…",
		KeyRetrieverReady:     "yt-dlp pronto",
		KeyRetrieverMissing:   "yt-dlp indisponível",
		KeyConverterReady:     "ffmpeg disponível",
		KeyConverterMissing:   "ffmpeg não encontrado (MP3/WAV/MP4 indisponíveis)",
	}
}
