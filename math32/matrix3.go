// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "errors"

// Matrix3 is 3x3 matrix organized internally as column matrix,
// matching the WGSL mat3x3f column order.
type Matrix3 [9]float32

// Identity3 returns a new identity [Matrix3] matrix.
func Identity3() Matrix3 {
	m := Matrix3{}
	m.SetIdentity()
	return m
}

// Matrix3Columns returns a new [Matrix3] with the given columns.
func Matrix3Columns(c0, c1, c2 Vector3) Matrix3 {
	return Matrix3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// Matrix3FromMatrix4 returns a new [Matrix3] from the upper-left 3x3
// of the given [Matrix4].
func Matrix3FromMatrix4(m *Matrix4) Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Matrix3RotationX returns a rotation matrix about the X axis
// by the given angle in radians (right-handed).
func Matrix3RotationX(angle float32) Matrix3 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix3{
		1, 0, 0,
		0, c, s,
		0, -s, c,
	}
}

// Matrix3RotationY returns a rotation matrix about the Y axis
// by the given angle in radians (right-handed).
func Matrix3RotationY(angle float32) Matrix3 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix3{
		c, 0, -s,
		0, 1, 0,
		s, 0, c,
	}
}

// Matrix3FromQuat returns the rotation matrix for the given unit quaternion.
func Matrix3FromQuat(q Quat) Matrix3 {
	var m4 Matrix4
	m4.SetRotationFromQuat(q)
	return Matrix3FromMatrix4(&m4)
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix3) SetIdentity() {
	*m = Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Column returns the given column (0-2) of the matrix.
func (m *Matrix3) Column(c int) Vector3 {
	i := c * 3
	return Vector3{m[i], m[i+1], m[i+2]}
}

// Mul returns this matrix times other matrix (this matrix is unchanged)
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	nm := Matrix3{}
	nm.MulMatrices(&m, &other)
	return nm
}

// MulMatrices sets this matrix as matrix multiplication a by b (i.e., a*b).
func (m *Matrix3) MulMatrices(a, b *Matrix3) {
	a11 := a[0]
	a12 := a[3]
	a13 := a[6]
	a21 := a[1]
	a22 := a[4]
	a23 := a[7]
	a31 := a[2]
	a32 := a[5]
	a33 := a[8]

	b11 := b[0]
	b12 := b[3]
	b13 := b[6]
	b21 := b[1]
	b22 := b[4]
	b23 := b[7]
	b31 := b[2]
	b32 := b[5]
	b33 := b[8]

	m[0] = a11*b11 + a12*b21 + a13*b31
	m[3] = a11*b12 + a12*b22 + a13*b32
	m[6] = a11*b13 + a12*b23 + a13*b33

	m[1] = a21*b11 + a22*b21 + a23*b31
	m[4] = a21*b12 + a22*b22 + a23*b32
	m[7] = a21*b13 + a22*b23 + a23*b33

	m[2] = a31*b11 + a32*b21 + a33*b31
	m[5] = a31*b12 + a32*b22 + a33*b32
	m[8] = a31*b13 + a32*b23 + a33*b33
}

// MulVector3 returns the given vector multiplied by this matrix.
func (m *Matrix3) MulVector3(v Vector3) Vector3 {
	return v.MulMatrix3(m)
}

// Determinant calculates and returns the determinant of this matrix.
func (m *Matrix3) Determinant() float32 {
	return m[0]*m[4]*m[8] -
		m[0]*m[5]*m[7] -
		m[1]*m[3]*m[8] +
		m[1]*m[5]*m[6] +
		m[2]*m[3]*m[7] -
		m[2]*m[4]*m[6]
}

// ErrSingular is returned when inverting a matrix with a zero determinant.
var ErrSingular = errors.New("math32: matrix is singular: determinant is zero")

// Inverse returns the inverse of this matrix.
// If the matrix cannot be inverted it returns the identity
// together with [ErrSingular].
func (m Matrix3) Inverse() (Matrix3, error) {
	n11 := m[0]
	n21 := m[1]
	n31 := m[2]
	n12 := m[3]
	n22 := m[4]
	n32 := m[5]
	n13 := m[6]
	n23 := m[7]
	n33 := m[8]
	t11 := n33*n22 - n32*n23
	t12 := n32*n13 - n33*n12
	t13 := n23*n12 - n22*n13

	det := n11*t11 + n21*t12 + n31*t13
	if det == 0 {
		return Identity3(), ErrSingular
	}
	di := 1 / det

	var nm Matrix3
	nm[0] = t11 * di
	nm[1] = (n31*n23 - n33*n21) * di
	nm[2] = (n32*n21 - n31*n22) * di
	nm[3] = t12 * di
	nm[4] = (n33*n11 - n31*n13) * di
	nm[5] = (n31*n12 - n32*n11) * di
	nm[6] = t13 * di
	nm[7] = (n21*n13 - n23*n11) * di
	nm[8] = (n22*n11 - n21*n12) * di
	return nm, nil
}

// Transpose returns the transpose of this matrix.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// ToSlice copies this matrix's elements to array starting at offset.
func (m *Matrix3) ToSlice(array []float32, offset int) {
	copy(array[offset:], m[:])
}
