package ui

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/history"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Services are the non-UI collaborators of the main window
type Services struct {
	Settings   *config.Settings
	Builder    *download.Builder
	Downloader download.Downloader
	Ledger     *history.Ledger
}

// RootUI represents the main UI structure. Apart from consume, every
// method runs on the UI goroutine.
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	builder      *download.Builder
	downloadSvc  download.Downloader
	ledger       *history.Ledger
	localization *Localization

	urlEntry      *widget.Entry
	modeRadio     *widget.RadioGroup
	formatSelect  *widget.Select
	qualitySelect *widget.Select
	folderLabel   *widget.Label
	progressBar   *widget.ProgressBar
	percentLabel  *widget.Label
	statusLabel   *widget.Label
	downloadBtn   *widget.Button
	showFileBtn   *widget.Button
	browseBtn     *widget.Button
	openFolderBtn *widget.Button
	themeBtn      *widget.Button
	historyTitle  *widget.Label
	historyEmpty  *widget.Label
	historyList   *widget.List
	footerLabel   *widget.Label
	form          *widget.Form

	mode          model.Mode
	formatOptions []download.FormatOption
	history       []model.DownloadResult
	lastOutput    string
	retriever     *download.RetrieverStatus
	busy          bool

	runOnUI   func(func())
	confirm   func(title, message string, callback func(bool))
	showInfo  func(title, message string)
	showError func(err error)
	reveal    func(path string) error
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(services.Settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     services.Settings,
		builder:      services.Builder,
		downloadSvc:  services.Downloader,
		ledger:       services.Ledger,
		localization: localization,
		mode:         services.Settings.GetMode(),
		runOnUI:      fyne.Do,
		reveal:       platform.RevealFile,
	}
	ui.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, ui.window)
	}
	ui.showInfo = func(title, message string) {
		dialog.ShowInformation(title, message, ui.window)
	}
	ui.showError = func(err error) {
		dialog.ShowError(err, ui.window)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()
	loc := ui.localization

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	// Trigger download when user presses Enter in the URL field
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.downloadBtn = widget.NewButton(loc.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.modeRadio = widget.NewRadioGroup(ui.modeOptions(), ui.onModeChanged)
	ui.modeRadio.Horizontal = true
	ui.modeRadio.Required = true

	ui.formatSelect = widget.NewSelect(nil, ui.onFormatChanged)
	ui.qualitySelect = widget.NewSelect(ui.qualityOptions(), ui.onQualityChanged)

	ui.folderLabel = widget.NewLabel(ui.settings.GetDownloadDirectory())
	ui.folderLabel.Truncation = fyne.TextTruncateEllipsis
	ui.browseBtn = widget.NewButton(loc.GetText(KeyBrowse), ui.onBrowseFolder)
	ui.openFolderBtn = widget.NewButton(IconFolder, ui.onOpenFolder)
	folderRow := container.NewBorder(nil, nil, nil, container.NewHBox(ui.browseBtn, ui.openFolderBtn), ui.folderLabel)

	ui.form = widget.NewForm(
		widget.NewFormItem(loc.GetText(KeyMode), ui.modeRadio),
		widget.NewFormItem(loc.GetText(KeyFormat), ui.formatSelect),
		widget.NewFormItem(loc.GetText(KeyQuality), ui.qualitySelect),
		widget.NewFormItem(loc.GetText(KeyDownloadDirectory), folderRow),
	)

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.percentLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	ui.statusLabel = widget.NewLabel(loc.GetText(KeyReady))
	ui.showFileBtn = widget.NewButton(IconFile+" "+loc.GetText(KeyShowLastFile), ui.onShowLastFile)
	ui.showFileBtn.Disable()

	progressRow := container.NewBorder(nil, nil, nil, ui.percentLabel, ui.progressBar)
	statusRow := container.NewBorder(nil, nil, nil, ui.showFileBtn, ui.statusLabel)

	ui.historyTitle = widget.NewLabelWithStyle(loc.GetText(KeyHistory), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.historyEmpty = widget.NewLabel(loc.GetText(KeyHistoryEmpty))
	ui.historyEmpty.Alignment = fyne.TextAlignCenter
	ui.historyList = widget.NewList(
		func() int { return len(ui.history) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.history) {
				return
			}
			obj.(*widget.Label).SetText(ui.history[id].HistoryLine())
		},
	)
	ui.historyList.OnSelected = ui.onHistorySelected

	ui.footerLabel = widget.NewLabel("")
	ui.footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	ui.themeBtn = widget.NewButton(IconTheme, ui.onToggleTheme)
	ui.themeBtn.Importance = widget.LowImportance
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	header := container.NewHBox(layout.NewSpacer(), ui.themeBtn, settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewHBox(logoImage, layout.NewSpacer(), ui.themeBtn, settingsBtn)
	}

	urlRow := container.NewBorder(nil, nil, nil, ui.downloadBtn, ui.urlEntry)

	top := container.NewVBox(
		header,
		urlRow,
		ui.form,
		progressRow,
		statusRow,
		widget.NewSeparator(),
		ui.historyTitle,
	)

	content := container.NewBorder(
		top,
		ui.footerLabel,
		nil,
		nil,
		container.NewStack(ui.historyList, ui.historyEmpty),
	)

	ui.modeRadio.SetSelected(ui.modeLabel(ui.mode))
	ui.qualitySelect.SetSelectedIndex(qualityIndex(ui.settings.GetQuality()))
	ui.refreshHistory()
	ui.updateFooter()

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// SetRetrieverStatus shows the outcome of the yt-dlp lookup in the footer
func (ui *RootUI) SetRetrieverStatus(status download.RetrieverStatus) {
	ui.retriever = &status
	ui.updateFooter()
}

func (ui *RootUI) updateFooter() {
	ui.footerLabel.SetText(ui.footerText())
}

func (ui *RootUI) footerText() string {
	loc := ui.localization

	var retriever string
	switch {
	case ui.retriever == nil:
		retriever = loc.GetText(KeyRetrieverChecking)
	case ui.retriever.Ready:
		retriever = strings.TrimSpace(loc.GetText(KeyRetrieverReady) + " " + ui.retriever.Version)
	default:
		retriever = loc.GetText(KeyRetrieverMissing)
	}

	capability := ui.builder.Capability()
	converter := loc.GetText(KeyConverterMissing)
	if capability.Available {
		converter = strings.TrimSpace(loc.GetText(KeyConverterReady) + " " + capability.Version)
	}

	return retriever + FooterSeparator + converter
}

func (ui *RootUI) modeOptions() []string {
	return []string{ui.modeLabel(model.ModeAudio), ui.modeLabel(model.ModeVideo)}
}

func (ui *RootUI) modeLabel(mode model.Mode) string {
	if mode == model.ModeVideo {
		return ui.localization.GetText(KeyVideo)
	}
	return ui.localization.GetText(KeyAudio)
}

func (ui *RootUI) qualityOptions() []string {
	keys := map[model.Quality]string{
		model.QualityBest:   KeyQualityBest,
		model.QualityHigh:   KeyQualityHigh,
		model.QualityMedium: KeyQualityMedium,
		model.QualityLow:    KeyQualityLow,
	}
	qualities := model.Qualities()
	options := make([]string, len(qualities))
	for i, q := range qualities {
		options[i] = ui.localization.GetText(keys[q])
	}
	return options
}

func qualityIndex(q model.Quality) int {
	for i, candidate := range model.Qualities() {
		if candidate == q {
			return i
		}
	}
	return 0
}

func (ui *RootUI) onModeChanged(option string) {
	mode := model.ModeAudio
	if option == ui.modeLabel(model.ModeVideo) {
		mode = model.ModeVideo
	}
	ui.mode = mode
	ui.settings.SetMode(mode)
	ui.reloadFormats(ui.settings.GetFormat(mode))
}

// reloadFormats fills the format select for the current mode. Formats the
// converter is missing for stay selectable and are marked, so picking one
// leads to the fallback question rather than a silent swap.
func (ui *RootUI) reloadFormats(selected model.Format) {
	ui.formatOptions = ui.builder.FormatOptions(ui.mode)

	labels := make([]string, len(ui.formatOptions))
	index := 0
	for i, opt := range ui.formatOptions {
		labels[i] = opt.Format.Label()
		if !opt.Available {
			labels[i] = ui.localization.Format(KeyNeedsConverter, opt.Format.Label())
		}
		if opt.Format == selected {
			index = i
		}
	}

	ui.formatSelect.SetOptions(labels)
	if len(labels) > 0 {
		ui.formatSelect.SetSelectedIndex(index)
	}
}

func (ui *RootUI) onFormatChanged(string) {
	if f := ui.selectedFormat(); f != "" {
		ui.settings.SetFormat(f)
	}
}

func (ui *RootUI) onQualityChanged(string) {
	ui.settings.SetQuality(ui.selectedQuality())
}

func (ui *RootUI) selectedFormat() model.Format {
	i := ui.formatSelect.SelectedIndex()
	if i < 0 || i >= len(ui.formatOptions) {
		return ""
	}
	return ui.formatOptions[i].Format
}

func (ui *RootUI) selectedQuality() model.Quality {
	qualities := model.Qualities()
	i := ui.qualitySelect.SelectedIndex()
	if i < 0 || i >= len(qualities) {
		return model.QualityBest
	}
	return qualities[i]
}

func (ui *RootUI) selection() download.Selection {
	return download.Selection{
		URL:         ui.urlEntry.Text,
		Mode:        ui.mode,
		Format:      ui.selectedFormat(),
		Quality:     ui.selectedQuality(),
		Destination: ui.settings.GetDownloadDirectory(),
	}
}

// onDownloadClick handles the download button click
func (ui *RootUI) onDownloadClick() {
	loc := ui.localization

	if ui.busy || ui.downloadSvc.Busy() {
		ui.showInfo(loc.GetText(KeyDownloadInProgress), loc.GetText(KeyWaitForDownload))
		return
	}

	if strings.TrimSpace(ui.urlEntry.Text) == "" {
		ui.showError(errors.New(loc.GetText(KeyPleaseEnterURL)))
		return
	}

	sel := ui.selection()
	req, err := ui.builder.Build(sel)
	if err == nil {
		ui.startDownload(req)
		return
	}

	var de *download.Error
	if errors.As(err, &de) && de.Kind == download.KindMissingDependency && de.Fallback != "" {
		message := loc.Format(KeyUseFallback, sel.Format.Label(), de.Fallback.Label())
		ui.confirm(loc.GetText(KeyMissingConverter), message, func(ok bool) {
			if !ok {
				return
			}
			sel.AllowFallback = true
			req, err := ui.builder.Build(sel)
			if err != nil {
				ui.showFailure(err.Error())
				return
			}
			ui.startDownload(req)
		})
		return
	}

	log.Printf("Request rejected: %v", err)
	ui.showFailure(err.Error())
}

func (ui *RootUI) startDownload(req *model.DownloadRequest) {
	events, err := ui.downloadSvc.Start(req)
	if errors.Is(err, download.ErrBusy) {
		ui.showInfo(ui.localization.GetText(KeyDownloadInProgress), ui.localization.GetText(KeyWaitForDownload))
		return
	}
	if err != nil {
		ui.showFailure(err.Error())
		return
	}

	log.Printf("Download started: %s", req.Summary())

	ui.setBusy(true)
	ui.applyProgress(model.ProgressEvent{Stage: model.StageFetching})
	go ui.consume(events)
}

// consume forwards worker events to the UI goroutine until the channel closes
func (ui *RootUI) consume(events <-chan model.Event) {
	for ev := range events {
		ui.runOnUI(func() {
			ui.applyEvent(ev)
		})
	}
}

func (ui *RootUI) applyEvent(ev model.Event) {
	ui.applyProgress(ev.Progress)
	if ev.IsTerminal() {
		ui.finish(*ev.Result)
	}
}

func (ui *RootUI) applyProgress(p model.ProgressEvent) {
	ui.progressBar.SetValue(p.Percent / 100)
	ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, int(p.Percent)))
	ui.statusLabel.SetText(ui.stageText(p))
}

func (ui *RootUI) stageText(p model.ProgressEvent) string {
	loc := ui.localization
	switch p.Stage {
	case model.StageFetching:
		return loc.Format(KeyFetching, int(p.Percent))
	case model.StageConverting:
		return loc.Format(KeyConverting, int(p.Percent))
	case model.StageDone:
		return loc.GetText(KeyDone)
	case model.StageFailed:
		return loc.GetText(KeyFailed)
	default:
		return loc.GetText(KeyReady)
	}
}

func (ui *RootUI) finish(result model.DownloadResult) {
	ui.setBusy(false)
	ui.refreshHistory()

	if !result.Succeeded() {
		ui.showFailure(result.Message)
		return
	}

	ui.urlEntry.SetText("")
	ui.lastOutput = result.OutputPath
	if ui.lastOutput != "" {
		ui.showFileBtn.Enable()
	}

	folder := ui.settings.GetDownloadDirectory()
	if result.OutputPath != "" {
		folder = filepath.Dir(result.OutputPath)
	}
	ui.showInfo(ui.localization.GetText(KeyDownloadCompleted), ui.localization.Format(KeySavedTo, folder))

	if ui.settings.GetAutoRevealOnComplete() && result.OutputPath != "" {
		ui.revealFile(result.OutputPath)
	}
}

func (ui *RootUI) showFailure(message string) {
	ui.showError(errors.New(truncateText(message, MaxErrorDialogLength)))
}

func (ui *RootUI) setBusy(busy bool) {
	ui.busy = busy
	if busy {
		ui.downloadBtn.SetText(ui.localization.GetText(KeyDownloading))
		ui.downloadBtn.Disable()
		return
	}
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.downloadBtn.Enable()
}

func (ui *RootUI) refreshHistory() {
	ui.history = ui.ledger.Newest()
	if len(ui.history) == 0 {
		ui.historyEmpty.Show()
	} else {
		ui.historyEmpty.Hide()
	}
	ui.historyList.Refresh()
}

func (ui *RootUI) onHistorySelected(id widget.ListItemID) {
	defer ui.historyList.Unselect(id)
	if id < 0 || id >= len(ui.history) {
		return
	}
	if path := ui.history[id].OutputPath; path != "" {
		ui.revealFile(path)
	}
}

func (ui *RootUI) onShowLastFile() {
	if ui.lastOutput != "" {
		ui.revealFile(ui.lastOutput)
	}
}

func (ui *RootUI) revealFile(path string) {
	if err := ui.reveal(path); err != nil {
		log.Printf("Failed to reveal %s: %v", path, err)
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
	}
}

func (ui *RootUI) onBrowseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.setDownloadDirectory(uri.Path())
	}, ui.window)
}

func (ui *RootUI) setDownloadDirectory(dir string) {
	ui.settings.SetDownloadDirectory(dir)
	ui.folderLabel.SetText(dir)
}

func (ui *RootUI) onOpenFolder() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		ui.showError(err)
		return
	}
	if err := platform.OpenFolder(dir); err != nil {
		log.Printf("Failed to open folder %s: %v", dir, err)
		ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
	}
}

func (ui *RootUI) onToggleTheme() {
	variant := ui.settings.ToggleTheme()
	ui.app.Settings().SetTheme(NewCompactTheme(variant))
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.folderLabel.SetText(ui.settings.GetDownloadDirectory())
	if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
		ui.localization.SetLanguage(lang)
		ui.refreshUITexts()
		ui.createMenu()
	}
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	loc := ui.localization
	ui.window.SetTitle(loc.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	ui.setBusy(ui.busy)
	ui.browseBtn.SetText(loc.GetText(KeyBrowse))
	ui.showFileBtn.SetText(IconFile + " " + loc.GetText(KeyShowLastFile))
	ui.historyTitle.SetText(loc.GetText(KeyHistory))
	ui.historyEmpty.SetText(loc.GetText(KeyHistoryEmpty))

	ui.form.Items[0].Text = loc.GetText(KeyMode)
	ui.form.Items[1].Text = loc.GetText(KeyFormat)
	ui.form.Items[2].Text = loc.GetText(KeyQuality)
	ui.form.Items[3].Text = loc.GetText(KeyDownloadDirectory)
	ui.form.Refresh()

	// Assigned directly so OnChanged does not fire.
	ui.modeRadio.Options = ui.modeOptions()
	ui.modeRadio.Selected = ui.modeLabel(ui.mode)
	ui.modeRadio.Refresh()

	quality := ui.selectedQuality()
	ui.qualitySelect.SetOptions(ui.qualityOptions())
	ui.qualitySelect.SetSelectedIndex(qualityIndex(quality))
	ui.reloadFormats(ui.selectedFormat())

	if !ui.busy {
		ui.statusLabel.SetText(loc.GetText(KeyReady))
	}
	ui.updateFooter()
}

func truncateText(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + Ellipsis
}
