// Package shading holds the numeric core of the deferred pipeline in plain Go.
//
// Every function here has a GLSL twin in internal/opengl; the Go versions
// generate the data uploaded to the GPU (cube face matrices, SSAO kernels,
// noise) and pin down the exact arithmetic the shaders perform, so the
// pipeline's numeric contracts can be tested without a GL context.
package shading
