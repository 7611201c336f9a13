package shader

import "github.com/gogpu/distfield"

// generateWGSL emits the compute-shader realization. One invocation per
// coordinate, 16x16 workgroups, full Cell records written to storage so the
// CPU side can compare distance/index/value, not just color.
func generateWGSL(p distfield.Profile, bind Binding) (string, error) {
	var b builder

	b.line("// Generated by distfield/shader. Profile parameters are baked in;")
	b.line("// regenerate instead of editing.")
	b.line("")
	b.line("struct Params {")
	b.line("    origin: vec2<f32>,")
	b.line("    size: vec2<u32>,")
	b.line("}")
	b.line("")
	b.line("struct Cell {")
	b.line("    dist: f32,")
	b.line("    index: u32,")
	b.line("    value: u32,")
	b.line("    color: u32,")
	b.line("}")
	b.line("")
	b.line("@group(0) @binding(0) var<uniform> params: Params;")
	b.line("@group(0) @binding(1) var<storage, read> curve_data: array<u32>;")
	if bind.PaletteSize > 0 {
		b.line("@group(0) @binding(2) var<storage, read> palette_data: array<u32>;")
	}
	b.line("@group(0) @binding(3) var<storage, read_write> out_cells: array<Cell>;")
	b.line("")
	b.line("@compute @workgroup_size(16, 16)")
	b.line("fn main(@builtin(global_invocation_id) gid: vec3<u32>) {")
	b.line("    if (gid.x >= params.size.x || gid.y >= params.size.y) {")
	b.line("        return;")
	b.line("    }")

	if bind.PanX != 0 {
		b.linef("    var px = params.origin.x + f32(gid.x) + %s;", b.lit(bind.PanX))
	} else {
		b.line("    var px = params.origin.x + f32(gid.x);")
	}
	if bind.PanY != 0 {
		b.linef("    var py = params.origin.y + f32(gid.y) + %s;", b.lit(bind.PanY))
	} else {
		b.line("    var py = params.origin.y + f32(gid.y);")
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
		b.line("    let fx = px;")
		b.line("    let fy = py;")
		b.linef("    px = fx + %s*(0.3*sin(fy*%s) + 0.3*sin(fy*%s) + 0.1*sin(fy*%s));", str, s1, s2, s3)
		b.linef("    py = fy + %s*(0.3*sin(fx*%s) + 0.3*sin(fx*%s) + 0.1*sin(fx*%s));", str, s1, s2, s3)
	}

	if p.EffectiveAngular() {
		b.line("    let wr = sqrt(px*px + py*py);")
		b.line("    var wang = atan2(py, px);")
		b.linef("    wang = wang + sin(wang*%s + %s)*%s;",
			b.lit(p.AngularFreq), b.lit(p.AngularOffsetDeg*degToRad), b.lit(p.AngularAmp*0.01))
		b.line("    px = wr*cos(wang);")
		b.line("    py = wr*sin(wang);")
	}

	if needsRadius(p) {
		b.line("    let r = sqrt(px*px + py*py);")
	}
	if needsAngle(p) {
		b.line("    let ang = atan2(py, px);")
	}
	b.linef("    var d = %s;", methodTable[p.Method].wgsl)

	if p.FractalEnabled {
		s1, s2, s3 := b.lit(p.FractalScale1), b.lit(p.FractalScale2), b.lit(p.FractalScale3)
		str := b.lit(p.FractalStrength)
		b.linef("    d = d + %s*(0.3*sin(d*%s) + 0.2*cos(d*%s) + 0.1*sin(d*%s));", str, s1, s2, s3)
	}

	if p.EffectiveAngular() {
		b.linef("    d = d + sin(ang*%s)*%s;", b.lit(p.AngularFreq), b.lit(p.AngularAmp))
	}

	// NaN compares false, so this single test catches NaN and +-Inf.
	b.line("    if (!(abs(d) < 1.0e30)) {")
	b.line("        d = 0.0;")
	b.line("    }")

	b.linef("    let scaled = d * %s;", b.lit(p.CurveScale))
	b.linef("    let index = u32(floor(abs(scaled)) %% %s);", b.lit(float64(bind.CurveWidth)))
	b.line("    var value = curve_data[index];")

	if p.EffectiveChecker() {
		b.linef("    if ((i32(floor(d / %s)) & 1) != 0) {", b.lit(p.CheckerSteps))
		b.line("        value = 255u - value;")
		b.line("    }")
	}

	if bind.PaletteSize > 0 {
		b.linef("    let color = palette_data[value %% %du];", bind.PaletteSize)
	} else {
		b.line("    let color = value | (value << 8u) | (value << 16u) | 4278190080u;")
	}

	b.line("    let oi = gid.y * params.size.x + gid.x;")
	b.line("    out_cells[oi] = Cell(d, index, value, color);")
	b.line("}")

	return b.result()
}

const degToRad = 0.017453292519943295
