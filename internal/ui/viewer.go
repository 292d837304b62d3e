package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tsplit/internal/domain"
)

// PlanViewer displays a computed partition in an interactive TUI: buckets
// on the left, the selected bucket's files on the right.
type PlanViewer struct{}

// NewPlanViewer creates a new PlanViewer
func NewPlanViewer() *PlanViewer {
	return &PlanViewer{}
}

// View opens the interactive viewer. Returns when the user quits.
func (pv *PlanViewer) View(p domain.Partition) error {
	if len(p) == 0 {
		return fmt.Errorf("nothing to view: partition is empty")
	}

	app := tview.NewApplication()

	detail := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)
	detail.SetBorder(true).SetTitle(" Files ")

	showBucket := func(index int) {
		bucket := p[index]
		detail.Clear()
		fmt.Fprintf(detail, "[yellow]bucket %d[-]  %d file(s), %dms total\n\n",
			index, len(bucket.Items), bucket.Total().Milliseconds())
		for _, item := range bucket.Items {
			fmt.Fprintf(detail, "  %s  [gray](%dms)[-]\n", item.Name, item.Weight.Milliseconds())
		}
		detail.ScrollToBeginning()
	}

	list := tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true)
	list.SetBorder(true).SetTitle(" Buckets ")
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		showBucket(index)
	})

	for i, bucket := range p {
		list.AddItem(
			fmt.Sprintf("bucket %d", i),
			fmt.Sprintf("%d file(s), %dms", len(bucket.Items), bucket.Total().Milliseconds()),
			0, nil)
	}
	showBucket(0)

	help := tview.NewTextView().
		SetDynamicColors(true).
		SetText("[gray] ↑/↓ select bucket   q quit[-]")

	flex := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(detail, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(flex, 0, 1, true).
		AddItem(help, 1, 0, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}
