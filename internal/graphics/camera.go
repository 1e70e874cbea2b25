package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera circles a focus point at a distance, controlled by yaw/pitch
// offsets from mouse movement and zoom from the scroll wheel.
type OrbitCamera struct {
	Focus    mgl32.Vec3
	Distance float32
	Yaw      float32 // degrees around the up axis
	Pitch    float32 // degrees above the horizon

	width, height int
}

// NewOrbitCamera creates a camera orbiting focus from the given distance.
func NewOrbitCamera(focus mgl32.Vec3, distance float32, width, height int) *OrbitCamera {
	return &OrbitCamera{
		Focus:    focus,
		Distance: distance,
		Yaw:      45,
		Pitch:    30,
		width:    width,
		height:   height,
	}
}

// Rotate applies yaw/pitch deltas in degrees, keeping pitch off the poles.
func (c *OrbitCamera) Rotate(dyaw, dpitch float32) {
	c.Yaw += dyaw
	c.Pitch += dpitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Zoom scales the orbit distance; positive steps move closer.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance *= float32(math.Pow(0.9, float64(steps)))
	if c.Distance < 1 {
		c.Distance = 1
	}
}

// Resize updates the aspect ratio used for the projection matrix.
func (c *OrbitCamera) Resize(width, height int) {
	c.width, c.height = width, height
}

// Position returns the camera's world position.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	offset := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Cos(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Sin(yaw)),
	}.Mul(c.Distance)
	return c.Focus.Add(offset)
}

// ViewMatrix returns the look-at matrix toward the focus point.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Focus, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(c.width) / float32(c.height)
	return mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 10000)
}
