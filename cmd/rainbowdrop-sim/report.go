package main

import (
	"io"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Games     int
	Seed      uint64
	MaxFrames int
	FrameStep time.Duration

	// Results
	Results   []GameResult
	TotalTime time.Duration
	Score     Stats[int]
	Clears    Stats[int]
	GameTime  Stats[time.Duration]
	TickTime  Stats[time.Duration]
}

type GameResult struct {
	Seed     uint64
	Score    int
	Clears   int
	MaxCombo int
	Frames   int
	Played   time.Duration
	Over     bool
}

type number interface {
	~int | ~int64
}

type Stats[T number] struct {
	Min     T
	Max     T
	Avg     T
	Samples []T
}

func (s *Stats[T]) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total T
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / T(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# rainbowdrop Simulation Report

## Configuration
- **Games:** {{.Games}}
- **Seed:** {{.Seed}}
- **Frame Step:** {{.FrameStep}}
- **Frame Limit:** {{.MaxFrames}}

## Results
- **Total Run Time:** {{.TotalTime}}
- **Score:** avg {{.Score.Avg}}, min {{.Score.Min}}, max {{.Score.Max}}
- **Clears:** avg {{.Clears.Avg}}, min {{.Clears.Min}}, max {{.Clears.Max}}
- **Game Time:** avg {{.GameTime.Avg}}, min {{.GameTime.Min}}, max {{.GameTime.Max}}
- **Tick Time:** avg {{.TickTime.Avg}}, max {{.TickTime.Max}}

## Games
| # | Seed | Score | Clears | Max Combo | Played | Ended |
|---|------|-------|--------|-----------|--------|-------|
{{range $i, $g := .Results}}| {{inc $i}} | {{$g.Seed}} | {{$g.Score}} | {{$g.Clears}} | {{$g.MaxCombo}} | {{$g.Played}} | {{if $g.Over}}game over{{else}}frame limit{{end}} |
{{end}}`

	fm := template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
