package scene

// A mandelbrot iteration-count field over a rectangular region of the
// complex plane. Sampled by procedural materials using surface UVs.
type MandelbrotField struct {
	width   float64
	height  float64
	centerX float64
	centerY float64
	maxIter int
}

func NewMandelbrotField(width, height float64) *MandelbrotField {
	return &MandelbrotField{
		width:   width,
		height:  height,
		centerX: -0.5,
		centerY: 0,
		maxIter: 100,
	}
}

// Number of iterations before the orbit at (u, v) escapes.
func (f *MandelbrotField) Value(u, v float32) float32 {
	cr := f.centerX + (float64(u)-0.5)*f.width
	ci := f.centerY + (float64(v)-0.5)*f.height

	var zr, zi float64
	for i := 0; i < f.maxIter; i++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > 4 {
			return float32(i)
		}
	}
	return float32(f.maxIter)
}
