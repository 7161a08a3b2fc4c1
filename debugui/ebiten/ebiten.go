// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rainbowdrop/debugui"
	"github.com/plus3/rainbowdrop/engine"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation
// and the scheduler that queues the overlay's panels each frame.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend

	overlay *debugui.Overlay
	sched   *engine.Scheduler
}

// New creates the backend window and wires overlay into a scheduler on clock.
func New(title string, width, height int, overlay *debugui.Overlay, clock engine.Clock) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	sched := engine.NewScheduler(clock)
	sched.Register(&debugui.ImguiSystem{Overlay: overlay})

	return &ImguiBackend{
		EbitenBackend: backend,
		overlay:       overlay,
		sched:         sched,
	}
}

// Update runs one ImGui frame: every overlay panel renders between
// BeginFrame and EndFrame.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.sched.Once()
	b.EndFrame()
}

func (b *ImguiBackend) Input() debugui.InputState {
	return b.overlay.Input()
}
