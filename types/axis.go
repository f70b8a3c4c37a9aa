package types

// An orthonormal local reference frame attached to a point in the scene.
// U, V and W form a right-handed unit basis; there is no scaling component.
// Primitive instances use an Axis to move rays into their local space and
// the tracer uses it to move scattered rays back out to world space.
type Axis struct {
	Origin Vec3
	U      Vec3
	V      Vec3
	W      Vec3
}

// Identity frame at the world origin.
func AxisIdentity() Axis {
	return Axis{
		U: Vec3{1, 0, 0},
		V: Vec3{0, 1, 0},
		W: Vec3{0, 0, 1},
	}
}

// Identity frame translated to the given origin.
func AxisTranslation(origin Vec3) Axis {
	axis := AxisIdentity()
	axis.Origin = origin
	return axis
}

// Frame rotated by the given euler angles (radians), applied in Z, Y, X
// order, and translated to the given origin.
func AxisEulerZYX(ax, ay, az float32, origin Vec3) Axis {
	qx := QuatFromAxisAngle(Vec3{1, 0, 0}, ax)
	qy := QuatFromAxisAngle(Vec3{0, 1, 0}, ay)
	qz := QuatFromAxisAngle(Vec3{0, 0, 1}, az)
	rot := qx.Mul(qy).Mul(qz).Normalize()

	return Axis{
		Origin: origin,
		U:      rot.Rotate(Vec3{1, 0, 0}),
		V:      rot.Rotate(Vec3{0, 1, 0}),
		W:      rot.Rotate(Vec3{0, 0, 1}),
	}
}

// Frame located at origin with W pointing from lookat towards origin and V
// roughly aligned with up. Used for camera placement.
func AxisLookAt(lookat, origin, up Vec3) Axis {
	w := origin.Sub(lookat).Normalize()
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	return Axis{
		Origin: origin,
		U:      u,
		V:      v,
		W:      w,
	}
}

// Map a point from local space to world space.
func (a Axis) TransformFrom(p Vec3) Vec3 {
	return a.Origin.Add(a.RotateFrom(p))
}

// Map a direction from local space to world space.
func (a Axis) RotateFrom(d Vec3) Vec3 {
	return a.U.Mul(d[0]).Add(a.V.Mul(d[1])).Add(a.W.Mul(d[2]))
}

// Map a point from world space to local space.
func (a Axis) TransformTo(p Vec3) Vec3 {
	return a.RotateTo(p.Sub(a.Origin))
}

// Map a direction from world space to local space.
func (a Axis) RotateTo(d Vec3) Vec3 {
	return Vec3{d.Dot(a.U), d.Dot(a.V), d.Dot(a.W)}
}
