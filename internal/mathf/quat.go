package mathf

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Quat is a rotation quaternion with components (X, Y, Z, W).
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity is the identity rotation.
var QuatIdentity = Quat{W: 1}

// QuatFromEuler builds a quaternion from intrinsic XYZ Euler angles,
// in radians.
func QuatFromEuler(x, y, z float32) Quat {
	sinX, cosX := math32.Sin(x*0.5), math32.Cos(x*0.5)
	sinY, cosY := math32.Sin(y*0.5), math32.Cos(y*0.5)
	sinZ, cosZ := math32.Sin(z*0.5), math32.Cos(z*0.5)

	return Quat{
		X: sinX*cosY*cosZ + cosX*sinY*sinZ,
		Y: cosX*sinY*cosZ - sinX*cosY*sinZ,
		Z: cosX*cosY*sinZ - sinX*sinY*cosZ,
		W: cosX*cosY*cosZ + sinX*sinY*sinZ,
	}
}

// QuatFromAxisAngle builds a quaternion rotating by angle radians
// around axis. axis must be unit length.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	sin, cos := math32.Sin(angle*0.5), math32.Cos(angle*0.5)
	return Quat{
		X: axis.X * sin,
		Y: axis.Y * sin,
		Z: axis.Z * sin,
		W: cos,
	}
}

// Normalized returns q scaled to unit length. The zero quaternion is
// returned unchanged.
func (q Quat) Normalized() Quat {
	len2 := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if len2 == 0 || len2 == 1 {
		return q
	}
	inv := 1 / math32.Sqrt(len2)
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// Conjugated returns the conjugate of q.
func (q Quat) Conjugated() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverted returns the inverse rotation. For unit quaternions this is
// the normalized conjugate.
func (q Quat) Inverted() Quat {
	return q.Conjugated().Normalized()
}

// Mul returns the Hamilton product q * r, the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y + q.Y*r.W + q.Z*r.X - q.X*r.Z,
		Z: q.W*r.Z + q.Z*r.W + q.X*r.Y - q.Y*r.X,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// RotateVec3 rotates v by q. q must be unit length.
func (q Quat) RotateVec3(v Vec3) Vec3 {
	qv := Vec3{q.X, q.Y, q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Scale(q.W).Add(uuv).Scale(2))
}

// Euler returns the intrinsic XYZ Euler angles of q as a Vec3 of
// radians (roll, pitch, yaw). Pitch is clamped to ±π/2 at the poles.
func (q Quat) Euler() Vec3 {
	sinrCosp := 2 * (q.W*q.X + q.Y*q.Z)
	cosrCosp := 1 - 2*(q.X*q.X+q.Y*q.Y)
	roll := math32.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (q.W*q.Y - q.Z*q.X)
	var pitch float32
	if math32.Abs(sinp) >= 1 {
		pitch = math32.Copysign(math32.Pi/2, sinp)
	} else {
		pitch = math32.Asin(sinp)
	}

	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	yaw := math32.Atan2(sinyCosp, cosyCosp)

	return Vec3{X: roll, Y: pitch, Z: yaw}
}

// String renders q as its Euler angles in degrees.
func (q Quat) String() string {
	const radToDeg = 180 / math32.Pi
	e := q.Euler()
	return fmt.Sprintf("Quat(x=%g, y=%g, z=%g)", e.X*radToDeg, e.Y*radToDeg, e.Z*radToDeg)
}
