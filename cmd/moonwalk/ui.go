package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"

	"moonwalk/internal/config"
	"moonwalk/internal/core/macro"
)

const (
	windowTitle  = "Moonwalk Macros"
	windowWidth  = 480
	windowHeight = 600
	pollInterval = 100 * time.Millisecond
)

// brokenInjector reports the backend construction error on every call so
// the window still opens when input injection is unavailable.
type brokenInjector struct {
	err error
}

func (b brokenInjector) KeyDown(macro.Key) error { return b.err }
func (b brokenInjector) KeyUp(macro.Key) error   { return b.err }
func (b brokenInjector) Close() error            { return nil }

func runUI(opts options, cfg config.Config, cfgErr error, logFile io.Writer) error {
	fApp := app.New()
	fApp.Settings().SetTheme(newMoonwalkTheme())

	window := fApp.NewWindow(windowTitle)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.SetFixedSize(true)
	window.CenterOnScreen()

	logGrid := widget.NewTextGrid()
	logGrid.SetText("")
	logScroll := container.NewVScroll(logGrid)
	logScroll.SetMinSize(fyne.NewSize(0, 120))

	const maxUILogLines = 50
	var logMu sync.Mutex
	logLines := make([]string, 0, maxUILogLines)
	debugLogs := debugLogsEnabled()
	appendLogLine := func(line string) {
		if !debugLogs {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		logMu.Lock()
		logLines = append(logLines, line)
		if len(logLines) > maxUILogLines {
			logLines = logLines[len(logLines)-maxUILogLines:]
		}
		logText := strings.Join(logLines, "\n")
		logMu.Unlock()

		fyne.Do(func() {
			logGrid.SetText(logText)
			logScroll.ScrollToBottom()
		})
	}

	logger := newSlogLogger(opts.logLevel, appendLogLine, logFile)
	if cfgErr != nil {
		logger.Warn("Ignoring startup config", "err", cfgErr)
	}
	if opts.logPath != "" {
		logger.Info("Writing log file", "path", opts.logPath)
	}

	startup := status{Text: "Ready", Severity: macro.SeverityInfo}
	injector, err := openInjector(opts.backend, logger)
	if err != nil {
		logger.Error("Input backend unavailable", "err", err)
		if isPermissionError(err) {
			err = fmt.Errorf("%s", permissionDeniedHint())
		}
		injector = brokenInjector{err: err}
		startup = status{Text: fmt.Sprintf("Input backend unavailable: %v", err), Severity: macro.SeverityWarning}
	}
	listener := openListener(opts.backend, logger)

	clock := clockwork.NewRealClock()
	sess, err := newSession(cfg, injector, listener, clock, logger)
	if err != nil {
		_ = injector.Close()
		_ = listener.Close()
		return err
	}

	statusText := canvas.NewText("", color.White)
	statusText.TextStyle = fyne.TextStyle{Bold: true}
	setStatus := func(st status) {
		statusText.Text = st.Text
		statusText.Color = severityColor(st.Severity)
		statusText.Refresh()
	}
	setStatus(startup)

	activeLabel := widget.NewLabel(sess.activeHotkeys())

	// Macro settings.
	emoteOptions := make([]string, 0, config.MaxEmoteSlot)
	for slot := config.MinEmoteSlot; slot <= config.MaxEmoteSlot; slot++ {
		emoteOptions = append(emoteOptions, strconv.Itoa(slot))
	}
	emoteSelect := widget.NewSelect(emoteOptions, func(value string) {
		if slot, err := strconv.Atoi(value); err == nil {
			sess.cfg.EmoteSlot = slot
		}
	})
	emoteSelect.SetSelected(strconv.Itoa(sess.cfg.EmoteSlot))

	gearEntry := widget.NewEntry()
	gearEntry.SetPlaceHolder("1-9 or 0")
	gearEntry.SetText(sess.cfg.GearSlot)
	gearEntry.OnChanged = func(value string) {
		if runes := []rune(value); len(runes) > 1 {
			last := string(runes[len(runes)-1])
			sess.cfg.GearSlot = last
			gearEntry.SetText(last)
			return
		}
		sess.cfg.GearSlot = value
	}

	peakEntry := widget.NewEntry()
	peakSlider := widget.NewSlider(config.MinPeakDelay, config.MaxPeakDelay)
	peakSlider.Step = 0.01
	syncingPeak := false
	peakEntry.SetText(fmt.Sprintf("%.2f", sess.cfg.PeakDelay))
	peakSlider.SetValue(sess.cfg.PeakDelay)
	peakEntry.OnChanged = func(value string) {
		if syncingPeak {
			return
		}
		delay, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			delay = 0
		}
		sess.cfg.PeakDelay = delay
		if delay >= config.MinPeakDelay && delay <= config.MaxPeakDelay {
			syncingPeak = true
			peakSlider.SetValue(delay)
			syncingPeak = false
		}
	}
	peakSlider.OnChanged = func(value float64) {
		if syncingPeak {
			return
		}
		sess.cfg.PeakDelay = value
		syncingPeak = true
		peakEntry.SetText(fmt.Sprintf("%.2f", value))
		syncingPeak = false
	}

	unequipCheck := widget.NewCheck("Unequip after", func(checked bool) {
		sess.cfg.UnequipAfter = checked
	})
	unequipCheck.SetChecked(sess.cfg.UnequipAfter)

	unshiftlockCheck := widget.NewCheck("Unshiftlock after", func(checked bool) {
		sess.cfg.UnshiftlockAfter = checked
	})
	unshiftlockCheck.SetChecked(sess.cfg.UnshiftlockAfter)

	modifierRadio := widget.NewRadioGroup(
		[]string{config.ModifierShift.Label(), config.ModifierControl.Label()},
		func(value string) {
			if m, err := config.ParseModifier(value); err == nil {
				sess.cfg.ShiftlockKey = m
			}
		},
	)
	modifierRadio.Horizontal = true
	modifierRadio.Required = true
	modifierRadio.SetSelected(sess.cfg.ShiftlockKey.Label())

	// Hotkeys.
	offsetEntry := widget.NewEntry()
	offsetEntry.SetText(sess.cfg.OffsetHotkey)
	offsetEntry.OnChanged = func(value string) {
		sess.cfg.OffsetHotkey = value
	}
	clipEntry := widget.NewEntry()
	clipEntry.SetText(sess.cfg.ClipHotkey)
	clipEntry.OnChanged = func(value string) {
		sess.cfg.ClipHotkey = value
	}

	hotkeyEntry := func(target hotkeyTarget) *widget.Entry {
		if target == targetClip {
			return clipEntry
		}
		return offsetEntry
	}

	startCapture := func(target hotkeyTarget) {
		window.Canvas().Unfocus()
		setStatus(sess.beginCapture(target))
		window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			st, ok := sess.finishCapture(string(ev.Name))
			window.Canvas().SetOnTypedKey(nil)
			if !ok {
				return
			}
			hotkeyEntry(target).SetText(sess.hotkeyName(target))
			setStatus(st)
		})
	}

	offsetSetBtn := widget.NewButton("Set", func() { startCapture(targetOffset) })
	clipSetBtn := widget.NewButton("Set", func() { startCapture(targetClip) })

	applyHotkeys := func() {
		setStatus(sess.applyHotkeys())
		activeLabel.SetText(sess.activeHotkeys())
	}
	applyBtn := widget.NewButton("Apply Hotkeys", applyHotkeys)
	applyBtn.Importance = widget.MediumImportance

	// Actions.
	offsetBtn := widget.NewButton("Run "+macro.ActionOffset.Title(), func() {
		setStatus(sess.runAction(macro.ActionOffset))
	})
	offsetBtn.Importance = widget.HighImportance
	clipBtn := widget.NewButton("Run "+macro.ActionClip.Title(), func() {
		setStatus(sess.runAction(macro.ActionClip))
	})
	clipBtn.Importance = widget.HighImportance

	var closeOnce sync.Once
	stopPoll := make(chan struct{})
	cleanup := func() {
		closeOnce.Do(func() {
			close(stopPoll)
			if err := sess.close(); err != nil {
				logger.Warn("Failed to release input backend", "err", err)
			}
		})
	}

	requestQuit := func() {
		fyne.Do(func() {
			cleanup()
			if currentApp := fyne.CurrentApp(); currentApp != nil {
				currentApp.Quit()
				return
			}
			window.SetCloseIntercept(nil)
			window.Close()
		})
	}
	quitBtn := widget.NewButton("Quit", requestQuit)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			requestQuit()
		case <-stopPoll:
		}
	}()

	window.SetCloseIntercept(func() {
		cleanup()
		if currentApp := fyne.CurrentApp(); currentApp != nil {
			currentApp.Quit()
			return
		}
		window.SetCloseIntercept(nil)
		window.Close()
	})

	go func() {
		ticker := clock.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopPoll:
				return
			case <-ticker.Chan():
				fyne.Do(func() {
					if st, ran := sess.pollHotkeys(); ran {
						setStatus(st)
					}
				})
			}
		}
	}()

	titleText := canvas.NewText("MOONWALK MACROS", color.NRGBA{R: 0x9d, G: 0x92, B: 0xff, A: 0xff})
	titleText.TextStyle = fyne.TextStyle{Bold: true}
	titleText.TextSize = 24

	accentLine := canvas.NewRectangle(color.NRGBA{R: 0x8a, G: 0x7d, B: 0xff, A: 0xff})
	accentLine.SetMinSize(fyne.NewSize(200, 3))

	peakControl := container.NewBorder(nil, nil, nil, container.NewGridWrap(fyne.NewSize(70, 36), peakEntry), peakSlider)
	settingsForm := widget.NewForm(
		widget.NewFormItem("Emote slot", emoteSelect),
		widget.NewFormItem("Gear slot", gearEntry),
		widget.NewFormItem("Peak delay (s)", peakControl),
		widget.NewFormItem("Shiftlock key", modifierRadio),
	)
	settingsCard := widget.NewCard("Macro Settings", "", container.NewVBox(
		settingsForm,
		container.NewGridWithColumns(2, unequipCheck, unshiftlockCheck),
	))

	hotkeyForm := widget.NewForm(
		widget.NewFormItem("COM Offset", container.NewBorder(nil, nil, nil, offsetSetBtn, offsetEntry)),
		widget.NewFormItem("Wall Clip", container.NewBorder(nil, nil, nil, clipSetBtn, clipEntry)),
	)
	hotkeyCard := widget.NewCard("Hotkeys", "", container.NewVBox(hotkeyForm, applyBtn, activeLabel))

	actionsCard := widget.NewCard("Actions", "", container.NewVBox(
		container.NewGridWithColumns(2, offsetBtn, clipBtn),
		quitBtn,
	))

	mainContent := container.NewVBox(
		titleText,
		accentLine,
		settingsCard,
		hotkeyCard,
		actionsCard,
		statusText,
	)
	mainPanel := container.NewPadded(container.NewVScroll(mainContent))

	var rootContent fyne.CanvasObject = mainPanel
	if debugLogs {
		logsCard := widget.NewCard("Logs", "", logScroll)
		split := container.NewVSplit(mainPanel, logsCard)
		split.SetOffset(0.75)
		rootContent = split
	}

	if opts.applyHotkeys {
		applyHotkeys()
	}

	window.SetContent(rootContent)
	window.ShowAndRun()
	cleanup()
	return nil
}
