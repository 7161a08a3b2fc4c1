// Package debugui provides a Dear ImGui overlay for inspecting a running
// session. Panels register render functions with an Overlay, and an
// ImguiSystem on a scheduler queues them once per frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rainbowdrop/engine"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// InputState tracks whether ImGui is consuming mouse or keyboard input.
// Games should ignore their own input while a flag is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay is the set of panels drawn each frame.
type Overlay struct {
	items []ImguiItem
	input InputState
}

func NewOverlay() *Overlay {
	return &Overlay{}
}

func (o *Overlay) Add(render func()) {
	o.items = append(o.items, ImguiItem{Render: render})
}

func (o *Overlay) Len() int {
	return len(o.items)
}

// Input returns the capture state recorded by the last ImguiSystem frame.
func (o *Overlay) Input() InputState {
	return o.input
}

// ImguiSystem updates the overlay's input state and defers every render
// function to the end of the frame.
type ImguiSystem struct {
	Overlay *Overlay
}

func (i *ImguiSystem) Execute(frame *engine.UpdateFrame) {
	io := imgui.CurrentIO()
	i.Overlay.input.WantCaptureMouse = io.WantCaptureMouse()
	i.Overlay.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, item := range i.Overlay.items {
		frame.Commands.Defer(item.Render)
	}
}
