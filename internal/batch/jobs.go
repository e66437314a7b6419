package batch

import (
	"fmt"

	"pattern-projector/internal/calibration"
	"pattern-projector/internal/geom"
	"pattern-projector/internal/settings"
	"pattern-projector/internal/theme"
)

var modeNames = map[theme.ColorMode]string{
	theme.Light:         "light",
	theme.InvertedGreen: "inverted-green",
	theme.Inverted:      "inverted",
}

// Previews returns a calibration frame and a projection frame for every
// color mode, named like "calibrate-light".
func Previews(m *calibration.Manager, ds settings.DisplaySettings, local geom.Mat3, width, height int) []Job {
	var jobs []Job
	for _, mode := range []theme.ColorMode{theme.Light, theme.InvertedGreen, theme.Inverted} {
		for _, calibrating := range []bool{true, false} {
			s := m.Snapshot(local, ds)
			s.Calibrating = calibrating
			s.ColorProgress = theme.NewTransition(mode).Progress
			stage := "project"
			if calibrating {
				stage = "calibrate"
			}
			jobs = append(jobs, Job{
				Name:     fmt.Sprintf("%s-%s", stage, modeNames[mode]),
				Width:    width,
				Height:   height,
				Snapshot: s,
			})
		}
	}
	return jobs
}
