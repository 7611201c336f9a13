// Command fieldterm is an interactive terminal viewer for distance field
// scenes. It renders the field into the terminal with tcell and lets you
// move the viewport with vi-style keys.
//
// Keys:
//
//	h/j/k/l  move the viewport
//	+/-      adjust the curve scale
//	c        toggle the checkerboard step
//	g        print the specialized WGSL source on exit
//	q / Esc  quit
//
// Moving the viewport keeps the result cache warm: a frame whose window is
// fully covered by cached results costs nothing, while any partial overlap
// recomputes the whole window (the executor does not stitch gaps). Changing
// the curve scale or checkerboard flag rewrites the profile, so the whole
// cache is flushed and the next frame is a full recompute.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/backend/wgpu"
	"github.com/gogpu/distfield/internal/scenecfg"
	"github.com/gogpu/distfield/shader"
)

const panStep = 4

func main() {
	var (
		scenePath = flag.String("scene", "scene.toml", "scene description file")
		cpuOnly   = flag.Bool("cpu", false, "evaluate on the CPU only")
	)
	flag.Parse()

	scene, err := scenecfg.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	opts := []distfield.SessionOption{
		distfield.WithPan(scene.PanX, scene.PanY),
	}
	if !*cpuOnly {
		opts = append(opts, distfield.WithBackend(wgpu.New()))
	}
	session := distfield.NewSession(opts...)
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to init screen: %v", err)
	}

	v := &viewer{
		session: session,
		screen:  screen,
		scene:   scene,
		offX:    scene.Bounds.MinX,
		offY:    scene.Bounds.MinY,
		profile: scene.Profile,
	}
	dumpWGSL := v.run()
	screen.Fini()

	if dumpWGSL {
		if err := printWGSL(scene, v.profile); err != nil {
			log.Fatalf("Failed to generate shader: %v", err)
		}
	}
}

type viewer struct {
	session *distfield.Session
	screen  tcell.Screen
	scene   *scenecfg.Scene

	offX, offY int
	profile    distfield.Profile
}

// run drives the event loop and reports whether the user asked for a
// shader dump on exit.
func (v *viewer) run() bool {
	for {
		if err := v.draw(); err != nil && err != distfield.ErrSuperseded {
			v.screen.Fini()
			log.Fatalf("Failed to evaluate region: %v", err)
		}

		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return false
			case ev.Rune() == 'g':
				return true
			case ev.Rune() == 'h':
				v.offX -= panStep
			case ev.Rune() == 'l':
				v.offX += panStep
			case ev.Rune() == 'k':
				v.offY -= panStep
			case ev.Rune() == 'j':
				v.offY += panStep
			case ev.Rune() == '+':
				v.profile.CurveScale *= 1.25
			case ev.Rune() == '-':
				v.profile.CurveScale /= 1.25
			case ev.Rune() == 'c':
				v.profile.CheckerEnabled = !v.profile.CheckerEnabled
				if v.profile.CheckerSteps <= 0 {
					v.profile.CheckerSteps = 10
				}
				v.profile = v.profile.Normalized()
			}
		}
	}
}

func (v *viewer) draw() error {
	w, h := v.screen.Size()
	if h < 2 {
		return nil
	}
	bounds := distfield.Bounds{
		MinX: v.offX, MinY: v.offY,
		MaxX: v.offX + w - 1, MaxY: v.offY + h - 2,
	}

	region, err := v.session.EvaluateRegion(context.Background(), v.scene.Curve, v.profile, v.scene.Palette, bounds)
	if err != nil {
		return err
	}

	for y := bounds.MinY; y <= bounds.MaxY; y++ {
		for x := bounds.MinX; x <= bounds.MaxX; x++ {
			res := region[distfield.Coord{X: x, Y: y}]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(
				int32(res.Color.R), int32(res.Color.G), int32(res.Color.B)))
			v.screen.SetContent(x-bounds.MinX, y-bounds.MinY, ' ', nil, style)
		}
	}

	v.drawStatus(w, h-1)
	v.screen.Show()
	return nil
}

func (v *viewer) drawStatus(w, row int) {
	backend := "cpu"
	if v.session.GPUReady() {
		backend = "gpu"
	}
	stats := v.session.CacheStats()
	status := fmt.Sprintf(" %s | origin (%d,%d) | scale %.3g | cached %d | hit %.0f%% | computes %d ",
		backend, v.offX, v.offY, v.profile.CurveScale,
		stats.Len, stats.HitRate*100, v.session.ComputeCount())

	style := tcell.StyleDefault.Reverse(true)
	for i := 0; i < w; i++ {
		r := ' '
		if i < len(status) {
			r = rune(status[i])
		}
		v.screen.SetContent(i, row, r, nil, style)
	}
}

func printWGSL(scene *scenecfg.Scene, p distfield.Profile) error {
	bind := shader.Binding{
		CurveWidth: scene.Curve.Width,
		PanX:       scene.PanX,
		PanY:       scene.PanY,
	}
	if scene.Palette != nil {
		bind.PaletteSize = len(scene.Palette.Colors)
	}
	src, err := shader.Generate(p, bind, shader.WGSL)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(src)
	return nil
}
