package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rainbowdrop/engine"
)

// PerformanceStats shows frame times and the per-system timings of a
// scheduler.
type PerformanceStats struct {
	title   string
	history frameHistory
}

func NewPerformanceStats(title string, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		title:   title,
		history: newFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render(stats *engine.SchedulerStats, deltaTime float32) {
	if !imgui.BeginV(ps.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.push(deltaTime * 1000.0)
	avgFrameTime := ps.history.average()

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Timers: %d fired, %d pending", stats.TimersFired, stats.TimersPending))
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// frameHistory is a fixed ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	index   int
}

func newFrameHistory(n int) frameHistory {
	return frameHistory{samples: make([]float32, max(n, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
}

func (h *frameHistory) average() float32 {
	var sum float32
	for _, ms := range h.samples {
		sum += ms
	}
	return sum / float32(len(h.samples))
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
