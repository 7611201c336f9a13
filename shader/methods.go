package shader

import "github.com/gogpu/distfield"

// methodSource holds the per-dialect distance expression for one method plus
// the helper values it needs. Expressions are written in terms of the
// distorted coordinate (px, py) and, when flagged, the radius r and angle
// ang. The numeric constants must match the engine's formula table exactly.
type methodSource struct {
	needsR   bool
	needsAng bool
	wgsl     string
	glsl     string
}

// methodTable is the single source of truth for shader-side distance
// formulas, keyed by distfield.DistanceMethod.
var methodTable = map[distfield.DistanceMethod]methodSource{
	distfield.MethodRadial: {
		needsR: true,
		wgsl:   "r",
		glsl:   "r",
	},
	distfield.MethodCartesianX: {
		wgsl: "abs(px)",
		glsl: "abs(px)",
	},
	distfield.MethodCartesianY: {
		wgsl: "abs(py)",
		glsl: "abs(py)",
	},
	distfield.MethodManhattan: {
		wgsl: "abs(px) + abs(py)",
		glsl: "abs(px) + abs(py)",
	},
	distfield.MethodChebyshev: {
		wgsl: "max(abs(px), abs(py))",
		glsl: "max(abs(px), abs(py))",
	},
	distfield.MethodMinkowski3: {
		wgsl: "pow(abs(px)*abs(px)*abs(px) + abs(py)*abs(py)*abs(py), 1.0 / 3.0)",
		glsl: "pow(abs(px)*abs(px)*abs(px) + abs(py)*abs(py)*abs(py), 1.0 / 3.0)",
	},
	distfield.MethodHexagonal: {
		wgsl: "max(abs(py), abs(py)*0.5 + abs(px)*0.8660254)",
		glsl: "max(abs(py), abs(py)*0.5 + abs(px)*0.8660254)",
	},
	distfield.MethodTriangular: {
		wgsl: "max(-py, abs(px)*0.8660254 + py*0.5)",
		glsl: "max(-py, abs(px)*0.8660254 + py*0.5)",
	},
	distfield.MethodSpiral: {
		needsR:   true,
		needsAng: true,
		wgsl:     "r + 20.0*(ang/6.2831853 + 0.5)",
		glsl:     "r + 20.0*(ang/6.2831853 + 0.5)",
	},
	distfield.MethodCross: {
		wgsl: "min(abs(px), abs(py))",
		glsl: "min(abs(px), abs(py))",
	},
	distfield.MethodSineWave: {
		wgsl: "abs(py - 20.0*sin(px*0.05))",
		glsl: "abs(py - 20.0*sin(px*0.05))",
	},
	distfield.MethodRipple: {
		needsR: true,
		wgsl:   "r + 10.0*sin(r*0.1)",
		glsl:   "r + 10.0*sin(r*0.1)",
	},
	distfield.MethodInterference: {
		wgsl: "0.5*(sqrt((px - 40.0)*(px - 40.0) + py*py) + sqrt((px + 40.0)*(px + 40.0) + py*py))",
		glsl: "0.5*(sqrt((px - 40.0)*(px - 40.0) + py*py) + sqrt((px + 40.0)*(px + 40.0) + py*py))",
	},
	distfield.MethodHyperbolic: {
		wgsl: "sqrt(abs(px*py))",
		glsl: "sqrt(abs(px*py))",
	},
	distfield.MethodPolarRose: {
		needsR:   true,
		needsAng: true,
		wgsl:     "r*abs(cos(4.0*ang))",
		glsl:     "r*abs(cos(4.0*ang))",
	},
	distfield.MethodLemniscate: {
		needsR:   true,
		needsAng: true,
		wgsl:     "abs(r - sqrt(max(5000.0*cos(2.0*ang), 0.0)))",
		glsl:     "abs(r - sqrt(max(5000.0*cos(2.0*ang), 0.0)))",
	},
	distfield.MethodLogarithmic: {
		needsR: true,
		wgsl:   "20.0*log(1.0 + r)",
		glsl:   "20.0*log(1.0 + r)",
	},
}
