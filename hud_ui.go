package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/warden/prefabs"
	"github.com/milk9111/warden/sim"
	"golang.org/x/image/font/basicfont"
)

var (
	defaultTextColor  = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	defaultPanelColor = color.NRGBA{R: 0x10, G: 0x18, B: 0x20, A: 0xc0}
)

const defaultEndPrompt = "You escaped! Press Esc to quit."

// HUD shows the objective and each guard's state in a corner panel, and the
// end prompt in a centered panel once the player has won.
type HUD struct {
	ui       *ebitenui.UI
	promptUI *ebitenui.UI

	objective *widget.Text
	guards    *widget.Text
	prompt    bool
}

func NewHUD(spec *prefabs.HudSpec) *HUD {
	if spec == nil {
		spec = &prefabs.HudSpec{}
	}
	textColor := spec.TextColor.Or(defaultTextColor)
	panelImg := imageui.NewNineSliceColor(spec.PanelColor.Or(defaultPanelColor))
	padding := spec.Padding
	if padding <= 0 {
		padding = 8
	}
	endPrompt := spec.EndPrompt
	if endPrompt == "" {
		endPrompt = defaultEndPrompt
	}

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	h := &HUD{}
	h.objective = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
	)
	h.guards = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: padding, Bottom: padding, Left: padding, Right: padding}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.objective)
	panel.AddChild(h.guards)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	h.ui = &ebitenui.UI{Container: root}

	promptPanel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	promptPanel.AddChild(widget.NewText(
		widget.TextOpts.Text(endPrompt, &face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))
	promptRoot := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	promptRoot.AddChild(promptPanel)
	h.promptUI = &ebitenui.UI{Container: promptRoot}

	return h
}

// Update copies the world's objective text and guard states into the
// widgets.
func (h *HUD) Update(w *sim.World) {
	h.objective.Label = w.Tracker().Text()
	h.guards.Label = guardSummary(w)
	h.prompt = w.Tracker().PromptVisible()

	h.ui.Update()
	if h.prompt {
		h.promptUI.Update()
	}
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
	if h.prompt {
		h.promptUI.Draw(screen)
	}
}

func guardSummary(w *sim.World) string {
	var b strings.Builder
	for i, g := range w.Guards() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", g.Agent.Name(), g.Agent.Kind())
		if g.Agent.ForceChasePlayer() {
			b.WriteString(" (alerted)")
		}
	}
	return b.String()
}
