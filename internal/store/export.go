package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/forcebox/internal/dynamo"
	"github.com/san-kum/forcebox/internal/sim"
)

type BodyTrack struct {
	Mass float64   `json:"mass"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	VX   []float64 `json:"vx"`
	VY   []float64 `json:"vy"`
}

type ExportData struct {
	Scene    string                     `json:"scene"`
	Dt       float64                    `json:"dt"`
	Duration float64                    `json:"duration"`
	Steps    int                        `json:"steps"`
	Times    []float64                  `json:"times"`
	Bodies   []BodyTrack                `json:"bodies"`
	Acted    [][]dynamo.ForceDescriptor `json:"acted"`
	Metrics  map[string]float64         `json:"metrics"`
}

// NewExportData regroups result frames into one track per body.
func NewExportData(scene string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Scene:    scene,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Acted:    result.Acted,
		Metrics:  result.Metrics,
	}
	if len(result.Frames) == 0 {
		return data
	}

	n := result.Frames[0].Len()
	data.Bodies = make([]BodyTrack, n)
	for i := range data.Bodies {
		b := &data.Bodies[i]
		b.Mass = result.Frames[0].Mass[i]
		for _, f := range result.Frames {
			b.X = append(b.X, f.X[i])
			b.Y = append(b.Y, f.Y[i])
			b.VX = append(b.VX, f.VX[i])
			b.VY = append(b.VY, f.VY[i])
		}
	}
	return data
}

func ExportJSON(path string, scene string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, scene, dt, duration, result)
}

func WriteJSON(w io.Writer, scene string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(scene, dt, duration, result))
}
