package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fileren/internal/config"
	"fileren/internal/plan"
	"fileren/internal/rename"
	"fileren/internal/renamelog"
	"fileren/internal/template"
)

/* -------------------- App State -------------------- */

type appState struct {
	folders    []string
	includeSub bool
	moveTo     string // destination override; "" keeps files in place
	pattern    string
	template   string

	current *plan.Plan
	checked []plan.CheckedPair
	summary plan.Summary

	page     int
	pageSize int

	settings *config.Settings
}

func main() {
	a := app.NewWithID("io.fileren.gui")
	w := a.NewWindow("File Renamer")
	w.Resize(fyne.NewSize(1040, 680))

	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		settings = config.DefaultSettings()
	}

	state := &appState{
		pattern:  settings.Pattern,
		template: settings.Template,
		pageSize: 12,
		settings: settings,
	}

	/* -------------------- Right: Preview -------------------- */

	resultsHeader := widget.NewLabel("No folders selected.")
	resultsHeader.TextStyle = fyne.TextStyle{Bold: true}

	previewBox := container.NewVBox()

	makeCell := func(text string) *widget.RichText {
		rt := widget.NewRichText(&widget.TextSegment{
			Text: text,
			Style: widget.RichTextStyle{
				SizeName: theme.SizeNameCaptionText,
			},
		})
		rt.Wrapping = fyne.TextWrapWord
		return rt
	}

	renderPreview := func() {
		previewBox.Objects = nil

		h1 := widget.NewLabelWithStyle("Source", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		h2 := widget.NewLabelWithStyle("Renamed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		previewBox.Add(container.NewGridWithColumns(2, h1, h2))
		previewBox.Add(widget.NewSeparator())

		start := state.page * state.pageSize
		end := start + state.pageSize
		if end > len(state.checked) {
			end = len(state.checked)
		}
		if start > end {
			start = end
		}
		for _, cp := range state.checked[start:end] {
			warn := ""
			if cp.Status != plan.StatusOK {
				warn = "  ⚠ " + cp.Reason
			}
			previewBox.Add(container.NewGridWithColumns(2,
				makeCell(cp.Source),
				makeCell(cp.Dest+warn),
			))
			previewBox.Add(widget.NewSeparator())
		}
		previewBox.Refresh()
	}

	/* -------------------- Pagination -------------------- */

	prevBtn := widget.NewButton("Previous", nil)
	nextBtn := widget.NewButton("Next", nil)
	pageLabel := widget.NewLabel("Page 1/1")
	pageLabel.Alignment = fyne.TextAlignCenter

	updatePageView := func() {
		total := len(state.checked)
		pages := pageCount(total, state.pageSize)
		state.page = clamp(state.page, 0, pages-1)

		switch {
		case len(state.folders) == 0:
			resultsHeader.SetText("No folders selected.")
		case total == 0:
			resultsHeader.SetText("No files match the pattern.")
		default:
			resultsHeader.SetText(fmt.Sprintf("%d file(s) to rename, %d conflict(s).",
				state.summary.Renamable,
				len(state.summary.Invalid)+len(state.summary.Duplicate)+len(state.summary.TargetExists)))
		}
		pageLabel.SetText(fmt.Sprintf("Page %d/%d", state.page+1, pages))

		prevBtn.Disable()
		nextBtn.Disable()
		if state.page > 0 && total > 0 {
			prevBtn.Enable()
		}
		if state.page < pages-1 && total > 0 {
			nextBtn.Enable()
		}

		renderPreview()
	}

	prevBtn.OnTapped = func() { state.page--; updatePageView() }
	nextBtn.OnTapped = func() { state.page++; updatePageView() }

	/* -------------------- Recompute -------------------- */

	recompute := func() {
		state.page = 0
		state.current = nil
		state.checked = nil
		state.summary = plan.Summary{}

		if len(state.folders) > 0 {
			p, err := plan.Compute(plan.PlanningInput{
				Roots:             state.folders,
				IncludeSubfolders: state.includeSub,
				Pattern:           state.pattern,
				Template:          state.template,
				DestFolder:        state.moveTo,
			})
			if err != nil {
				dialog.ShowError(err, w)
			} else {
				state.current = p
				state.checked, state.summary = plan.Check(p)
				for _, s := range p.SkippedRoots {
					dialog.ShowInformation("Folder skipped", s.String(), w)
				}
			}
		}
		updatePageView()
	}

	/* -------------------- Left: Folders + Parameters -------------------- */

	folderList := widget.NewLabel("[EMPTY] Please add folders.")
	folderList.Wrapping = fyne.TextWrapWord

	refreshFolderList := func() {
		if len(state.folders) == 0 {
			folderList.SetText("[EMPTY] Please add folders.")
			return
		}
		folderList.SetText(strings.Join(state.folders, "\n"))
	}

	addFolderBtn := widget.NewButton("Add folder…", func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			state.folders = append(state.folders, uri.Path())
			refreshFolderList()
			recompute()
		}, w).Show()
	})

	clearFoldersBtn := widget.NewButton("Clear", func() {
		state.folders = nil
		refreshFolderList()
		recompute()
	})

	subCheck := widget.NewCheck("Include sub-folders", func(v bool) {
		state.includeSub = v
		recompute()
	})

	patternEntry := widget.NewEntry()
	patternEntry.SetText(state.pattern)
	patternEntry.OnSubmitted = func(s string) {
		state.pattern = s
		recompute()
	}

	templateEntry := widget.NewEntry()
	templateEntry.SetText(state.template)
	templateEntry.OnSubmitted = func(s string) {
		state.template = s
		recompute()
	}

	// Token drop-down appends the chosen token to the template entry.
	tokenChoices := []string{""}
	for _, tok := range template.Tokens {
		tokenChoices = append(tokenChoices, fmt.Sprintf("%s, %s", tok.Bracket(), template.Descriptions[tok]))
	}
	tokenSelect := widget.NewSelect(tokenChoices, func(sel string) {
		if sel == "" {
			return
		}
		bracket := strings.SplitN(sel, ",", 2)[0]
		state.template = templateEntry.Text + bracket
		templateEntry.SetText(state.template)
		recompute()
	})

	moveToLabel := widget.NewLabel("")
	moveToLabel.Truncation = fyne.TextTruncateEllipsis

	selectMoveBtn := widget.NewButton("Select folder…", func() {
		dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			state.moveTo = uri.Path()
			moveToLabel.SetText(state.moveTo)
			recompute()
		}, w).Show()
	})
	selectMoveBtn.Disable()

	moveCheck := widget.NewCheck("Move renamed files to a folder", func(v bool) {
		if v {
			selectMoveBtn.Enable()
		} else {
			selectMoveBtn.Disable()
			state.moveTo = ""
			moveToLabel.SetText("")
			recompute()
		}
	})

	left := container.NewVScroll(container.NewVBox(
		widget.NewLabelWithStyle("Folders to rename", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(addFolderBtn, clearFoldersBtn),
		subCheck,
		folderList,
		widget.NewSeparator(),

		widget.NewLabelWithStyle("Target files (wildcards allowed)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		patternEntry,
		widget.NewSeparator(),

		widget.NewLabelWithStyle("New file-name format", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Don't put an extension here; the original extension is kept."),
		templateEntry,
		tokenSelect,
		widget.NewSeparator(),

		moveCheck,
		selectMoveBtn,
		moveToLabel,
	))

	/* -------------------- Bottom Actions (Dry Run / Run / Undo CSV) -------------------- */

	dryRunCheck := widget.NewCheck("Dry run (don't rename)", nil)
	undoLogCheck := widget.NewCheck("Create undo log (CSV)", nil)

	clearAfterRun := func() {
		state.folders = nil
		state.moveTo = ""
		state.pattern = settings.Pattern
		state.template = settings.Template
		patternEntry.SetText(state.pattern)
		templateEntry.SetText(state.template)
		moveToLabel.SetText("")
		refreshFolderList()
		recompute()
	}

	execute := func(savedCSV string) {
		dryRun := dryRunCheck.Checked

		opts := rename.Options{DryRun: dryRun}
		if !dryRun {
			log, err := renamelog.Open(settings.LogFile)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			defer log.Close()
			opts.Log = log
		}

		results, _ := rename.Apply(state.current, opts)
		if savedCSV != "" {
			_ = rename.SaveUndoCSV(savedCSV, results)
		}

		var failed []string
		for _, r := range results {
			if r.Err != nil {
				failed = append(failed, r.Err.Error())
			}
		}
		msg := rename.SummaryLine(results, dryRun)
		if len(failed) > 0 {
			msg += "\n\n" + strings.Join(firstN(failed, 20), "\n")
		}
		dialog.ShowInformation("Results", msg, w)

		if !dryRun {
			clearAfterRun()
		}
	}

	runBtn := widget.NewButtonWithIcon("Run renaming", theme.ConfirmIcon(), func() {
		if state.current == nil || len(state.current.Pairs) == 0 {
			dialog.ShowInformation("Nothing to do", "Add folders and make sure files match the pattern.", w)
			return
		}

		msg := plan.ConfirmMessage(state.summary)

		withOptionalCSV := func(next func(savePath string)) {
			if !undoLogCheck.Checked {
				next("")
				return
			}
			d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
				if err != nil || uc == nil {
					next("")
					return
				}
				path := uc.URI().Path()
				uc.Close()
				next(path)
			}, w)
			d.SetFileName("undo_log.csv")
			d.Show()
		}

		confirm := dialog.NewCustomConfirm("Confirm rename", "Proceed", "Cancel",
			container.NewVScroll(widget.NewLabel(msg)),
			func(ok bool) {
				if !ok {
					return
				}
				withOptionalCSV(execute)
			},
			w,
		)
		confirm.Resize(fyne.NewSize(700, 420))
		confirm.Show()
	})

	actionsBar := container.NewBorder(
		nil, nil,
		container.NewHBox(dryRunCheck, undoLogCheck),
		nil,
		runBtn,
	)

	rightTop := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(prevBtn, pageLabel, nextBtn), resultsHeader),
		widget.NewSeparator(),
	)

	right := container.NewBorder(
		rightTop,
		actionsBar,
		nil, nil,
		container.NewVScroll(previewBox),
	)

	/* -------------------- Layout -------------------- */

	split := container.NewHSplit(left, right)
	split.Offset = 0.38

	w.SetContent(split)

	updatePageView()

	w.ShowAndRun()
}

/* -------------------- Paging helpers -------------------- */

func pageCount(total, pageSize int) int {
	if pageSize <= 0 || total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func firstN[T any](in []T, n int) []T {
	if len(in) <= n {
		return in
	}
	return in[:n]
}
