package main

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"dotglobe/config"
	"dotglobe/core"
)

// clickSlopPx separates a click from a drag: releases within this distance
// of the press activate a dot, anything farther was a rotation.
const clickSlopPx = 5

// runViewer opens the interactive globe window. It is a pure consumer of
// the core: geometry and state are read each frame, and pointer hits are
// resolved to lat/lon before being handed to SetActive, so the core never
// sees screen-space math.
func runViewer(globe *core.Globe, viewer config.ViewerSettings) {
	rl.InitWindow(int32(viewer.Width), int32(viewer.Height), "dotglobe")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	radius := float32(globe.Config().Radius)
	dotSize := radius * 0.005

	// Orbit camera state, driven by left-drag and the scroll wheel.
	yaw := 0.6
	pitch := 0.35
	dist := float64(radius) * 3.0

	camera := rl.Camera3D{
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	var pressPos rl.Vector2
	for !rl.WindowShouldClose() {
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			pressPos = rl.GetMousePosition()
		}
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			delta := rl.GetMouseDelta()
			yaw -= float64(delta.X) * 0.005
			pitch += float64(delta.Y) * 0.005
			pitch = math.Max(-1.45, math.Min(1.45, pitch))
		}
		dist -= float64(rl.GetMouseWheelMove()) * float64(radius) * 0.15
		dist = math.Max(float64(radius)*1.3, math.Min(float64(radius)*8, dist))

		camera.Position = rl.NewVector3(
			float32(dist*math.Cos(pitch)*math.Cos(yaw)),
			float32(dist*math.Sin(pitch)),
			float32(dist*math.Cos(pitch)*math.Sin(yaw)),
		)

		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			release := rl.GetMousePosition()
			dx := float64(release.X - pressPos.X)
			dy := float64(release.Y - pressPos.Y)
			if math.Hypot(dx, dy) < clickSlopPx {
				activateAt(globe, release, camera, radius)
			}
		}
		if rl.IsKeyPressed(rl.KeyC) {
			if err := globe.ClearActive(); err != nil {
				log.Printf("clear failed: %v", err)
			}
		}

		states, err := globe.StateSnapshot()
		if err != nil {
			log.Printf("state snapshot failed: %v", err)
			break
		}
		points := globe.Points()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(8, 10, 22, 255))
		rl.BeginMode3D(camera)
		for i, p := range points {
			st := states[i]
			size := dotSize
			if st.Active {
				size = dotSize * 1.8
			}
			rl.DrawSphereEx(
				rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z)),
				size, 4, 6,
				rl.NewColor(st.Color.R, st.Color.G, st.Color.B, 255),
			)
		}
		rl.EndMode3D()
		rl.DrawFPS(10, 10)
		rl.DrawText(fmt.Sprintf("%d dots | click a dot to activate | C clears", len(points)),
			10, int32(viewer.Height)-26, 18, rl.RayWhite)
		rl.EndDrawing()
	}
}

// activateAt casts a pointer ray against the sphere and, on a hit, turns
// the surface position into lat/lon for the core to resolve.
func activateAt(globe *core.Globe, pos rl.Vector2, camera rl.Camera3D, radius float32) {
	ray := rl.GetScreenToWorldRay(pos, camera)
	hit := rl.GetRayCollisionSphere(ray, rl.NewVector3(0, 0, 0), radius)
	if !hit.Hit {
		return
	}
	x := float64(hit.Point.X)
	y := float64(hit.Point.Y)
	z := float64(hit.Point.Z)
	norm := math.Sqrt(x*x + y*y + z*z)
	if norm == 0 {
		return
	}
	lat, lon := core.ToLatLon(x/norm, y/norm, z/norm)
	if err := globe.SetActive([]core.ActiveRequest{{Lat: lat, Lon: lon}}); err != nil {
		log.Printf("activate (%.2f, %.2f) failed: %v", lat, lon, err)
	}
}
