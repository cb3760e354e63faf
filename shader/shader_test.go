package shader

import (
	"strings"
	"testing"
)

func TestPingPongBakesWorkGroupSize(t *testing.T) {
	src := GetPingPongComputeShader(32, 16, false)
	if !strings.Contains(src, "local_size_x = 32, local_size_y = 16") {
		t.Error("work-group size not baked into the kernel source")
	}
	// the grid may overshoot the texture, so the kernel must guard
	if !strings.Contains(src, ">= int(resolution.x)") {
		t.Error("kernel is missing the out-of-range guard")
	}
}

func TestPingPongModeVariants(t *testing.T) {
	static := GetPingPongComputeShader(16, 16, false)
	if !strings.Contains(static, "curl(vec3(noiseCoord, 0.0))") {
		t.Error("static mode should sample the z=0 plane")
	}
	if !strings.Contains(static, "prevOffset + noiseOffset * c") {
		t.Error("static mode should use the uniform as the step scale")
	}

	timed := GetPingPongComputeShader(16, 16, true)
	if !strings.Contains(timed, "curl(vec3(noiseCoord, noiseOffset))") {
		t.Error("time mode should feed the timer into the third noise coordinate")
	}
	if !strings.Contains(timed, "prevOffset + "+fixedStepScale+" * c") {
		t.Error("time mode should use the fixed step scale")
	}
}

func TestUniformBlockDeclaration(t *testing.T) {
	src := GetPingPongComputeShader(8, 8, false)
	// field order mirrors feedback.UniformBlock; std140 gives these fields
	// offsets 0, 4 and 8 with no padding
	i := strings.Index(src, "float noiseScale;")
	j := strings.Index(src, "float noiseOffset;")
	k := strings.Index(src, "vec2  resolution;")
	if i < 0 || j < 0 || k < 0 || !(i < j && j < k) {
		t.Error("uniform block fields missing or reordered")
	}
}

func TestResetZeroesBothTextures(t *testing.T) {
	src := GetResetComputeShader(16, 16)
	if strings.Count(src, "imageStore") != 2 {
		t.Error("reset kernel should write both feedback textures")
	}
	if !strings.Contains(src, "vec4(0.0)") {
		t.Error("reset kernel should write the zero vector")
	}
}

func TestRenderShaderSamplesWarpedImage(t *testing.T) {
	src := GetRenderFragmentShader()
	if !strings.Contains(src, "texture(u_feedback, frag_uv)") {
		t.Error("render pass should sample the feedback texture at the target-normalized coordinate")
	}
	if !strings.Contains(src, "texture(u_image, frag_uv + offset)") {
		t.Error("render pass should displace the source image lookup by the feedback offset")
	}
}
