package metrics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/forcebox/internal/dynamo"
)

func velocity(f dynamo.Frame, i int) mgl64.Vec2 { return mgl64.Vec2{f.VX[i], f.VY[i]} }

func position(f dynamo.Frame, i int) mgl64.Vec2 { return mgl64.Vec2{f.X[i], f.Y[i]} }

func acceleration(f dynamo.Frame, i int) mgl64.Vec2 { return mgl64.Vec2{f.AX[i], f.AY[i]} }
