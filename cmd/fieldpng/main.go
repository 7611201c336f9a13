// Command fieldpng renders a distance field scene to a PNG file.
//
// The scene is described by a TOML file (see internal/scenecfg). By default
// the field is evaluated on the GPU with a transparent CPU fallback; pass
// -cpu to skip GPU probing entirely.
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/distfield"
	"github.com/gogpu/distfield/backend/wgpu"
	"github.com/gogpu/distfield/internal/scenecfg"
	"github.com/gogpu/distfield/shader"
)

func main() {
	var (
		scenePath = flag.String("scene", "scene.toml", "scene description file")
		output    = flag.String("output", "field.png", "output file")
		scale     = flag.Int("scale", 1, "integer upscale factor")
		cpuOnly   = flag.Bool("cpu", false, "evaluate on the CPU only")
		emitWGSL  = flag.Bool("wgsl", false, "print the specialized WGSL source and exit")
		emitGLSL  = flag.Bool("glsl", false, "print the specialized GLSL source and exit")
	)
	flag.Parse()

	scene, err := scenecfg.Load(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}

	if *emitWGSL || *emitGLSL {
		if err := printShader(scene, *emitWGSL); err != nil {
			log.Fatalf("Failed to generate shader: %v", err)
		}
		return
	}

	opts := []distfield.SessionOption{
		distfield.WithPan(scene.PanX, scene.PanY),
	}
	if !*cpuOnly {
		opts = append(opts, distfield.WithBackend(wgpu.New()))
	}
	session := distfield.NewSession(opts...)
	defer session.Close()

	region, err := session.EvaluateRegion(context.Background(), scene.Curve, scene.Profile, scene.Palette, scene.Bounds)
	if err != nil {
		log.Fatalf("Failed to evaluate region: %v", err)
	}

	img := regionImage(region, scene.Bounds)
	if *scale > 1 {
		img = upscale(img, *scale)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *output, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatalf("Failed to encode PNG: %v", err)
	}

	backend := "cpu"
	if session.GPUReady() {
		backend = "gpu"
	}
	log.Printf("Rendered %dx%d field to %s (%s)", scene.Bounds.Width(), scene.Bounds.Height(), *output, backend)
}

func printShader(scene *scenecfg.Scene, wgsl bool) error {
	bind := shader.Binding{
		CurveWidth: scene.Curve.Width,
		PanX:       scene.PanX,
		PanY:       scene.PanY,
	}
	if scene.Palette != nil {
		bind.PaletteSize = len(scene.Palette.Colors)
	}
	dialect := shader.GLSL
	if wgsl {
		dialect = shader.WGSL
	}
	src, err := shader.Generate(scene.Profile, bind, dialect)
	if err != nil {
		return err
	}
	os.Stdout.WriteString(src)
	return nil
}

func regionImage(region distfield.Region, b distfield.Bounds) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	for coord, res := range region {
		i := img.PixOffset(coord.X-b.MinX, coord.Y-b.MinY)
		img.Pix[i+0] = res.Color.R
		img.Pix[i+1] = res.Color.G
		img.Pix[i+2] = res.Color.B
		img.Pix[i+3] = res.Color.A
	}
	return img
}

func upscale(src *image.RGBA, factor int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, src.Rect.Dx()*factor, src.Rect.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return dst
}
