package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/domain"
	"github.com/noogen-projects/md-cli-test/internal/storage"
)

// ErrorViewer displays failed cases in an interactive TUI
type ErrorViewer struct {
	config  *config.Config
	storage storage.Storage
}

// NewErrorViewer creates a new ErrorViewer
func NewErrorViewer(cfg *config.Config, st storage.Storage) *ErrorViewer {
	return &ErrorViewer{
		config:  cfg,
		storage: st,
	}
}

// View displays failed cases in an interactive TUI
func (ev *ErrorViewer) View(results *domain.RunOutput) error {
	if len(results.Details) == 0 {
		color.Green("✓ No failed cases found!")
		return nil
	}

	// Track resolved cases (by index) - load from storage
	resolved := make(map[int]bool)
	for i, failure := range results.Details {
		if failure.Resolved {
			resolved[i] = true
		}
	}

	// Function to save resolved status to storage
	var saveErr error
	saveResolvedStatus := func() {
		// Update the results with resolved status
		for i := range results.Details {
			results.Details[i].Resolved = resolved[i]
		}
		saveErr = ev.storage.SaveOutput(results)
	}

	// Create the application
	app := tview.NewApplication()

	// Create list for failed cases (left side)
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
			// When Enter is pressed, we'll show details (handled by key handler)
		})

	// Function to get formatted text for a list item
	getListItemText := func(index int) string {
		name := tview.Escape(caseName(results.Details[index], index+1))

		// Check if resolved
		if resolved[index] {
			return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
		}
		return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
	}

	// Function to update list item display with resolved status
	updateListItem := func(index int) {
		if index < 0 || index >= list.GetItemCount() {
			return
		}
		mainText := getListItemText(index)
		list.SetItemText(index, mainText, "")
	}

	// Add failed cases to the list with numbers and colors
	for i := range results.Details {
		mainText := getListItemText(i)
		list.AddItem(mainText, "", 0, nil)
	}

	// Set list colors for better visibility
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	// Create stats header view (shows document, section and line)
	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false).
		SetWordWrap(false)

	// Create text view for error details (right side)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	// Create a container with right padding for the details view
	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	// Create right side layout: stats on top, details below
	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	// Create simple flex layout: list on left (1/3), details on right (2/3)
	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	// Count unresolved cases
	countUnresolved := func() int {
		count := 0
		for i := range results.Details {
			if !resolved[i] {
				count++
			}
		}
		return count
	}

	// Create header text view (so we can update it)
	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// Function to update header
	updateHeader := func() {
		unresolved := countUnresolved()
		headerText := fmt.Sprintf(" Failed Cases (%d total, %d unresolved) | Use ↑↓ to navigate, [yellow]R[white] to mark resolved, → to view details, ← to go back, Ctrl+C to exit ", len(results.Details), unresolved)
		headerView.SetText(headerText)
	}

	// Set initial header
	updateHeader()

	// Update details when selection changes
	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Details) {
			failure := results.Details[index]

			// Update stats header
			statsText := ev.formatFailureStats(failure, index+1)
			statsView.SetText(statsText)

			// Update error details
			detailsView.SetText(ev.formatFailureDetails(failure))
		}
	}

	// Set up keyboard handlers for list
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp, tcell.KeyDown:
			return event
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(results.Details) {
					resolved[index] = !resolved[index]
					updateListItem(index)
					updateHeader()
					updateDetails()
					saveResolvedStatus()
				}
				return nil
			}
		}
		return event
	})

	// Set up keyboard handlers for details view
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	// Update details when list selection changes
	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	// Set initial details
	updateDetails()

	// Create main layout with title
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(
			tview.NewBox().SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
				return x, y, width, height
			}),
			1, 0, false,
		).
		AddItem(flex, 0, 1, true)

	// Run the application
	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if saveErr != nil {
		return fmt.Errorf("failed to save resolved cases: %w", saveErr)
	}
	return nil
}

// formatFailureDetails formats a failed case for display using tview color tags ([red], [cyan], etc.)
func (ev *ErrorViewer) formatFailureDetails(failure domain.Failure) string {
	var b strings.Builder

	// Failed command
	fmt.Fprintf(&b, "[red]✗ Command: %s[white]\n\n", tview.Escape(failedCommand(failure)))

	fmt.Fprintf(&b, "[cyan]Section: %s[white]\n", tview.Escape(sectionTitle(failure.Section)))
	fmt.Fprintf(&b, "[yellow]Location: %s[white]\n\n", tview.Escape(failure.Location()))

	// All commands of the case
	if len(failure.Commands) > 0 {
		b.WriteString("[yellow]Commands:[white]\n")
		for _, command := range failure.Commands {
			fmt.Fprintf(&b, "  $ %s\n", tview.Escape(command))
		}
		b.WriteString("\n")
	}

	// Output blocks are written verbatim so tabs and trailing spaces survive
	if failure.Diff != "" {
		fmt.Fprintf(&b, "[yellow]Diff (-expected +actual):[white]\n%s\n", colorDiff(failure.Diff))
		fmt.Fprintf(&b, "[yellow]Expected:[white]\n%s\n\n", tview.Escape(failure.Expected))
		fmt.Fprintf(&b, "[yellow]Actual:[white]\n%s\n", tview.Escape(failure.Actual))
	} else if failure.Message != "" {
		fmt.Fprintf(&b, "[yellow]Message:[white]\n%s\n\n", tview.Escape(failure.Message))
	}

	return b.String()
}

// formatFailureStats formats the stats header for a failed case
func (ev *ErrorViewer) formatFailureStats(failure domain.Failure, number int) string {
	path := failure.SourcePath
	if path == "" {
		path = "Unknown path"
	}

	return fmt.Sprintf("[cyan]path:[white] [yellow]%s:%d[white] [cyan]section:[white] [yellow]%s[white] [gray](#%d)[white]\n",
		tview.Escape(path), failure.SourceLine, tview.Escape(sectionTitle(failure.Section)), number)
}

// colorDiff highlights removed and added lines of a go-cmp diff
func colorDiff(diff string) string {
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, line := range lines {
		escaped := tview.Escape(line)
		switch trimmed := strings.TrimSpace(line); {
		case strings.HasPrefix(trimmed, "-"):
			lines[i] = "[red]" + escaped + "[white]"
		case strings.HasPrefix(trimmed, "+"):
			lines[i] = "[green]" + escaped + "[white]"
		default:
			lines[i] = escaped
		}
	}
	return strings.Join(lines, "\n")
}

func caseName(failure domain.Failure, number int) string {
	command := failedCommand(failure)
	if command == "" {
		return fmt.Sprintf("Case %d", number)
	}
	return fmt.Sprintf("%s (line %d)", command, failure.SourceLine)
}
