// Copyright (c) 2026, The Tessera Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-5)

func assertVector3(t *testing.T, want, got Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, float64(standardTol))
	assert.InDelta(t, want.Y, got.Y, float64(standardTol))
	assert.InDelta(t, want.Z, got.Z, float64(standardTol))
}

func TestQuatRotation(t *testing.T) {
	q := NewQuatAxisAngle(Vector3Y, DegToRad(90))
	assertVector3(t, Vec3(0, 0, -1), Vector3X.MulQuat(q))
	assertVector3(t, Vector3X, Vector3X.MulQuat(q).MulQuat(q.Inverse()))

	// a.Mul(b) applies b first
	qx := NewQuatAxisAngle(Vector3X, DegToRad(90))
	assertVector3(t, Vector3Z.MulQuat(qx).MulQuat(q), Vector3Z.MulQuat(q.Mul(qx)))

	assert.True(t, QuatIdentity().IsIdentity())
	assert.True(t, Quat{}.IsNil())
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QuatIdentity()
	b := NewQuatAxisAngle(Vector3Z, DegToRad(120))
	assert.Equal(t, a, a.Slerp(b, 0))
	assert.Equal(t, b, a.Slerp(b, 1))
	mid := a.Slerp(b, 0.5)
	assertVector3(t, Vector3X.MulQuat(NewQuatAxisAngle(Vector3Z, DegToRad(60))), Vector3X.MulQuat(mid))
}

func TestVector3Lerp(t *testing.T) {
	a := Vec3(1.1, -2.3, 7)
	b := Vec3(-4, 0.25, 3.3)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assertVector3(t, Vec3(-1.45, -1.025, 5.15), a.Lerp(b, 0.5))
}

func TestMatrix4Transform(t *testing.T) {
	var m Matrix4
	m.SetTransform(Vec3(1, 2, 3), NewQuatAxisAngle(Vector3Z, DegToRad(90)), Vec3(2, 2, 2))
	assertVector3(t, Vec3(1, 4, 3), Vector3X.MulMatrix4AsPoint(&m))

	id := Identity4()
	assert.Equal(t, m, *m.Mul(id))
	assert.Equal(t, m, *id.Mul(&m))
	assert.Equal(t, Vec3(1, 2, 3), m.Translation())
}

func TestBox3(t *testing.T) {
	b := B3FromPoints(Vec3(-1, 0, 2), Vec3(1, 3, -2))
	assert.Equal(t, B3(-1, 0, -2, 1, 3, 2), b)
	assert.True(t, b.ContainsPoint(Vec3(0, 1, 0)))
	assert.False(t, b.ContainsPoint(Vec3(0, 4, 0)))
	assert.True(t, b.IntersectsBox(B3(0.5, 2.5, 1.5, 5, 5, 5)))
	assert.False(t, b.IntersectsBox(B3(2, 2, 2, 5, 5, 5)))
	assert.True(t, B3Empty().IsEmpty())

	var m Matrix4
	m.SetTransform(Vec3(10, 0, 0), NewQuatAxisAngle(Vector3Y, DegToRad(90)), Vec3(1, 1, 1))
	wb := B3(0, 0, 0, 1, 1, 2).MulMatrix4(&m)
	assertVector3(t, Vec3(10, 0, -1), wb.Min)
	assertVector3(t, Vec3(12, 1, 0), wb.Max)
}

func TestFrustumClipCube(t *testing.T) {
	f := NewFrustumFromMatrix(Identity4())
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0)))
	assert.True(t, f.ContainsPoint(Vec3(0.9, -0.9, 0.5)))
	assert.False(t, f.ContainsPoint(Vec3(1.5, 0, 0)))
	assert.True(t, f.IntersectsBox(B3(0.5, 0.5, 0.5, 3, 3, 3)))
	assert.False(t, f.IntersectsBox(B3(1.5, -1, -1, 3, 1, 1)))
	assert.False(t, f.IntersectsBox(B3(-1, -1, -4, 1, 1, -2)))
}

func TestNormalAndVolume(t *testing.T) {
	assertVector3(t, Vector3Z, Normal(Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(0, 1, 0)))
	assert.Equal(t, Vector3{}, Normal(Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(2, 0, 0)))
	assert.InDelta(t, 0.5, TriangleArea(Vec3(0, 0, 0), Vec3(1, 0, 0), Vec3(0, 1, 0)), 1e-6)
	assert.InDelta(t, 1.0/6, TetrahedronVolume(Vec3(0, 0, 0), Vector3X, Vector3Y, Vector3Z), 1e-6)
}
