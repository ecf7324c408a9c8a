// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tessera3d/tessera/math32"
)

// Camera defines the properties of the camera
type Camera struct {

	// overall orientation and direction of the camera, relative to pointing at negative Z axis with up (positive Y) direction
	Pose Pose

	// target location for the camera, where it is pointing at; reset by a call to LookAt
	Target math32.Vector3

	// up direction for camera, reset by call to LookAt
	UpDir math32.Vector3

	// set this to make the camera orthographic, spanning the view at the target distance
	Ortho bool

	// field of view in degrees
	FOV float32

	// aspect ratio (width/height)
	Aspect float32

	// near plane z coordinate
	Near float32

	// far plane z coordinate
	Far float32

	// view matrix (inverse of the Pose matrix)
	ViewMatrix math32.Matrix4

	// projection matrix, defining the camera perspective / ortho transform
	ProjectionMatrix math32.Matrix4

	// projection * view
	ViewProjection math32.Matrix4

	// frustum of projection: viewable space defined by 6 planes of a pyramidal shape
	Frustum *math32.Frustum
}

// NewCamera returns a camera with default settings.
func NewCamera() *Camera {
	cm := &Camera{}
	cm.Defaults()
	return cm
}

func (cm *Camera) Defaults() {
	cm.FOV = 30
	cm.Aspect = 1.5
	cm.Near = .01
	cm.Far = 1000
	cm.DefaultPose()
}

// DefaultPose resets the camera pose to default location and orientation, looking
// at the origin from 0,0,10, with up Y axis
func (cm *Camera) DefaultPose() {
	cm.Pose = NewPose(math32.Vec3(0, 0, 10))
	cm.LookAtOrigin()
}

func vec3gl(v math32.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Forward returns the direction the camera looks along.
func (cm *Camera) Forward() math32.Vector3 {
	return math32.Vec3(0, 0, -1).MulQuat(cm.Pose.Quat)
}

// UpdateMatrix updates the view and projection matrices and the frustum.
func (cm *Camera) UpdateMatrix() {
	cm.Pose.Defaults()
	eye := cm.Pose.Pos
	up := math32.Vector3Y.MulQuat(cm.Pose.Quat)
	cm.ViewMatrix = math32.Matrix4(mgl32.LookAtV(vec3gl(eye), vec3gl(eye.Add(cm.Forward())), vec3gl(up)))
	if cm.Ortho {
		dist := max(cm.Pose.Pos.DistanceTo(cm.Target), 1)
		height := 2 * dist * math32.Tan(math32.DegToRad(cm.FOV*0.5))
		width := cm.Aspect * height
		cm.ProjectionMatrix = math32.Matrix4(mgl32.Ortho(-width/2, width/2, -height/2, height/2, cm.Near, cm.Far))
	} else {
		cm.ProjectionMatrix = math32.Matrix4(mgl32.Perspective(mgl32.DegToRad(cm.FOV), cm.Aspect, cm.Near, cm.Far))
	}
	cm.ViewProjection.MulMatrices(&cm.ProjectionMatrix, &cm.ViewMatrix)
	cm.Frustum = math32.NewFrustumFromMatrix(&cm.ViewProjection)
}

// LookAt points the camera at given target location, using given up direction,
// and sets the Target, UpDir fields for future camera movements.
func (cm *Camera) LookAt(target, upDir math32.Vector3) {
	cm.Target = target
	if upDir.IsZero() {
		upDir = math32.Vector3Y
	}
	cm.UpDir = upDir
	if target != cm.Pose.Pos {
		view := mgl32.LookAtV(vec3gl(cm.Pose.Pos), vec3gl(target), vec3gl(upDir))
		q := mgl32.Mat4ToQuat(view).Inverse()
		cm.Pose.Quat = math32.NewQuat(q.V[0], q.V[1], q.V[2], q.W)
		cm.Pose.Quat.Normalize()
	}
	cm.UpdateMatrix()
}

// LookAtOrigin points the camera at origin with Y axis pointing Up (i.e., standard)
func (cm *Camera) LookAtOrigin() {
	cm.LookAt(math32.Vector3{}, math32.Vector3Y)
}

// ViewVector is the vector between the camera position and target
func (cm *Camera) ViewVector() math32.Vector3 {
	return cm.Pose.Pos.Sub(cm.Target)
}

// Project returns the normalized device coordinates of the world point p
// and whether it is in front of the camera.
func (cm *Camera) Project(p math32.Vector3) (math32.Vector3, bool) {
	clip := math32.Vector4FromVector3(p, 1).MulMatrix4(&cm.ViewProjection)
	if clip.W <= 0 {
		return math32.Vector3{}, false
	}
	return clip.PerspDiv(), true
}

// Billboard returns the rotation that turns a quad facing +Z
// toward the camera.
func (cm *Camera) Billboard() math32.Quat {
	return cm.Pose.Quat
}
