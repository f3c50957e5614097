package snli

import "math"

/*
AddInto adds src into dst element-wise

Parameters:
dst, src: []float32 - destination and source vectors of equal dimension
*/
func AddInto(dst, src []float32) error {
	if len(dst) != len(src) {
		return ErrDimensionMismatch
	}

	for i := range src {
		dst[i] += src[i]
	}
	return nil
}

/*
Scale multiplies a vector by a scalar value in place

Parameters:
v: []float32 - The vector to scale
scalar: float32 - The scalar value to multiply the vector by
*/
func Scale(v []float32, scalar float32) {
	for i := range v {
		v[i] *= scalar
	}
}

/*
CosineSimilarity calculates the cosine similarity between two vectors

Returns:
float32 - A value between -1 and 1, where 1 means identical direction,
0 means orthogonal, and -1 means opposite directions
*/
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	similarity := dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))

	// Correct for floating point precision issues
	if similarity > 1.0 {
		similarity = 1.0
	} else if similarity < -1.0 {
		similarity = -1.0
	}

	return similarity, nil
}
