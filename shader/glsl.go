package shader

import "github.com/gogpu/distfield"

// generateGLSL emits the fragment-shader realization. Coordinates come from
// gl_FragCoord, so the only inputs are the curve and palette textures:
// u_curve is width x 1 single channel, nearest-sampled; u_palette is
// size x 1 RGBA. Everything else is baked.
func generateGLSL(p distfield.Profile, bind Binding) (string, error) {
	var b builder

	b.line("#version 330 core")
	b.line("// Generated by distfield/shader. Profile parameters are baked in;")
	b.line("// regenerate instead of editing.")
	b.line("")
	b.line("uniform sampler2D u_curve;")
	if bind.PaletteSize > 0 {
		b.line("uniform sampler2D u_palette;")
	}
	b.line("")
	b.line("out vec4 frag_color;")
	b.line("")
	b.line("void main() {")

	// gl_FragCoord sits at pixel centers; floor it back onto the integer
	// lattice the CPU engine samples, or every pixel evaluates half a unit
	// off and curve indices flip.
	if bind.PanX != 0 {
		b.linef("    float px = floor(gl_FragCoord.x) + %s;", b.lit(bind.PanX))
	} else {
		b.line("    float px = floor(gl_FragCoord.x);")
	}
	if bind.PanY != 0 {
		b.linef("    float py = floor(gl_FragCoord.y) + %s;", b.lit(bind.PanY))
	} else {
		b.line("    float py = floor(gl_FragCoord.y);")
	}

	if p.EffectiveModulus() {
		m := b.lit(p.Modulus)
		h := b.lit(p.Modulus / 2)
		b.linef("    px = px - %s*floor(px / %s) - %s;", m, m, h)
		b.linef("    py = py - %s*floor(py / %s) - %s;", m, m, h)
	}

	if p.FractalEnabled {
		s1, s2, s3 := b.lit(p.FractalScale1), b.lit(p.FractalScale2), b.lit(p.FractalScale3)
		str := b.lit(p.FractalStrength)
		b.line("    float fx = px;")
		b.line("    float fy = py;")
		b.linef("    px = fx + %s*(0.3*sin(fy*%s) + 0.3*sin(fy*%s) + 0.1*sin(fy*%s));", str, s1, s2, s3)
		b.linef("    py = fy + %s*(0.3*sin(fx*%s) + 0.3*sin(fx*%s) + 0.1*sin(fx*%s));", str, s1, s2, s3)
	}

	if p.EffectiveAngular() {
		b.line("    float wr = sqrt(px*px + py*py);")
		b.line("    float wang = atan(py, px);")
		b.linef("    wang = wang + sin(wang*%s + %s)*%s;",
			b.lit(p.AngularFreq), b.lit(p.AngularOffsetDeg*degToRad), b.lit(p.AngularAmp*0.01))
		b.line("    px = wr*cos(wang);")
		b.line("    py = wr*sin(wang);")
	}

	if needsRadius(p) {
		b.line("    float r = sqrt(px*px + py*py);")
	}
	if needsAngle(p) {
		b.line("    float ang = atan(py, px);")
	}
	b.linef("    float d = %s;", methodTable[p.Method].glsl)

	if p.FractalEnabled {
		s1, s2, s3 := b.lit(p.FractalScale1), b.lit(p.FractalScale2), b.lit(p.FractalScale3)
		str := b.lit(p.FractalStrength)
		b.linef("    d = d + %s*(0.3*sin(d*%s) + 0.2*cos(d*%s) + 0.1*sin(d*%s));", str, s1, s2, s3)
	}

	if p.EffectiveAngular() {
		b.linef("    d = d + sin(ang*%s)*%s;", b.lit(p.AngularFreq), b.lit(p.AngularAmp))
	}

	b.line("    if (!(abs(d) < 1.0e30)) {")
	b.line("        d = 0.0;")
	b.line("    }")

	b.linef("    float scaled = d * %s;", b.lit(p.CurveScale))
	b.linef("    int index = int(mod(floor(abs(scaled)), %s));", b.lit(float64(bind.CurveWidth)))
	b.line("    int value = int(texelFetch(u_curve, ivec2(index, 0), 0).r * 255.0 + 0.5);")

	if p.EffectiveChecker() {
		b.linef("    if ((int(floor(d / %s)) & 1) != 0) {", b.lit(p.CheckerSteps))
		b.line("        value = 255 - value;")
		b.line("    }")
	}

	if bind.PaletteSize > 0 {
		b.linef("    frag_color = texelFetch(u_palette, ivec2(value %% %d, 0), 0);", bind.PaletteSize)
	} else {
		b.line("    frag_color = vec4(vec3(float(value) / 255.0), 1.0);")
	}

	b.line("}")

	return b.result()
}
