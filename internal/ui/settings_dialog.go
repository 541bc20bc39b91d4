package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
)

// SettingsDialog edits the persisted preferences
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry *widget.Entry
	languageSelect   *widget.Select
	autoRevealCheck  *widget.Check

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values are stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(config.DefaultDownloadDirectory())
	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.autoRevealCheck = widget.NewCheck(loc.GetText(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyDownloadDirectory), downloadDirRow),
		widget.NewFormItem(loc.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
}

// save stores the dialog values
func (sd *SettingsDialog) save() {
	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
