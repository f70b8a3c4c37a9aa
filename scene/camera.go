package scene

import "github.com/aduvenhage/lostnfound/types"

// The Camera interface exposes the lens parameters the viewport needs to
// generate primary rays.
type Camera interface {
	// Camera position.
	Origin() types.Vec3

	// Camera view axis.
	Axis() types.Axis

	// Vertical field of view (radians).
	Fov() float32

	// Aperture size for depth of field.
	Aperture() float32

	// Distance to the focus plane.
	FocusDistance() float32
}

// Simple camera with origin, up and lookat point.
type SimpleCamera struct {
	axis      types.Axis
	fov       float32
	aperture  float32
	focusDist float32
}

func NewSimpleCamera(origin, up, lookat types.Vec3, fov, aperture, focusDist float32) *SimpleCamera {
	return &SimpleCamera{
		axis:      types.AxisLookAt(lookat, origin, up),
		fov:       fov,
		aperture:  aperture,
		focusDist: focusDist,
	}
}

func (c *SimpleCamera) Origin() types.Vec3 {
	return c.axis.Origin
}

func (c *SimpleCamera) Axis() types.Axis {
	return c.axis
}

func (c *SimpleCamera) Fov() float32 {
	return c.fov
}

func (c *SimpleCamera) Aperture() float32 {
	return c.aperture
}

func (c *SimpleCamera) FocusDistance() float32 {
	return c.focusDist
}
