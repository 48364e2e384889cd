package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/chewxy/math32"
)

// showCameraDialog edits the viewport camera numerically. Angles are shown
// in degrees.
func (a *App) showCameraDialog() {
	cam := *a.scene.Camera()

	// Helper to create a bound float entry
	floatEntry := func(val *float32) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.2f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 32); err == nil {
				*val = float32(v)
			}
		}
		return e
	}

	yaw := degrees(cam.Yaw)
	pitch := degrees(cam.Pitch)
	fov := degrees(cam.FOV)

	targetSection := widget.NewCard("Target", "Point the camera orbits around",
		container.NewGridWithColumns(2,
			widget.NewLabel("X"), floatEntry(&cam.Target.X),
			widget.NewLabel("Y"), floatEntry(&cam.Target.Y),
			widget.NewLabel("Z"), floatEntry(&cam.Target.Z),
		))

	orbitSection := widget.NewCard("Orbit", "",
		container.NewGridWithColumns(2,
			widget.NewLabel("Distance"), floatEntry(&cam.Distance),
			widget.NewLabel("Yaw (degrees)"), floatEntry(&yaw),
			widget.NewLabel("Pitch (degrees)"), floatEntry(&pitch),
			widget.NewLabel("Field of View (degrees)"), floatEntry(&fov),
		))

	content := container.NewVScroll(container.NewVBox(targetSection, orbitSection))

	d := dialog.NewCustomConfirm("Camera Settings", "Apply", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if fov <= 1 || fov >= 179 || cam.Distance <= 0 {
			dialog.ShowError(fmt.Errorf("field of view must be between 1 and 179 degrees and distance > 0"), a.window)
			return
		}
		c := a.scene.Camera()
		c.Target = cam.Target
		c.Distance = cam.Distance
		c.FOV = radians(fov)
		c.Yaw, c.Pitch = 0, 0
		c.Orbit(radians(yaw), radians(pitch))
		a.scene.Render()
	}, a.window)
	d.Resize(fyne.NewSize(420, 460))
	d.Show()
}

func degrees(rad float32) float32 { return rad * 180 / math32.Pi }
func radians(deg float32) float32 { return deg * math32.Pi / 180 }
