package shader

import "fmt"

// fixedStepScale is the displacement added per feedback step in time-driven
// mode, where the second uniform field carries the timer instead of a
// slider-controlled step scale.
const fixedStepScale = "0.002"

const vertexShaderSource = `#version 430 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// The render pass normalizes by the output target's dimensions: frag_uv is
// produced by rasterizing a fullscreen quad over the current viewport, so
// it is pixel/drawableResolution regardless of the simulation size.
const renderFragmentShaderSource = `#version 430 core
in vec2 frag_uv;
out vec4 fragColor;

uniform sampler2D u_feedback;
uniform sampler2D u_image;

void main() {
    vec2 offset = texture(u_feedback, frag_uv).xy;
    vec3 color = texture(u_image, frag_uv + offset).rgb;
    fragColor = vec4(color, 1.0);
}
`

// Simplex noise by Ian McEwan, Ashima Arts (MIT), the stock GLSL port.
const noiseSource = `
vec3 mod289(vec3 x) { return x - floor(x * (1.0 / 289.0)) * 289.0; }
vec4 mod289(vec4 x) { return x - floor(x * (1.0 / 289.0)) * 289.0; }
vec4 permute(vec4 x) { return mod289(((x * 34.0) + 1.0) * x); }
vec4 taylorInvSqrt(vec4 r) { return 1.79284291400159 - 0.85373472095314 * r; }

float snoise(vec3 v) {
    const vec2 C = vec2(1.0 / 6.0, 1.0 / 3.0);
    const vec4 D = vec4(0.0, 0.5, 1.0, 2.0);

    vec3 i  = floor(v + dot(v, C.yyy));
    vec3 x0 = v - i + dot(i, C.xxx);

    vec3 g = step(x0.yzx, x0.xyz);
    vec3 l = 1.0 - g;
    vec3 i1 = min(g.xyz, l.zxy);
    vec3 i2 = max(g.xyz, l.zxy);

    vec3 x1 = x0 - i1 + C.xxx;
    vec3 x2 = x0 - i2 + C.yyy;
    vec3 x3 = x0 - D.yyy;

    i = mod289(i);
    vec4 p = permute(permute(permute(
               i.z + vec4(0.0, i1.z, i2.z, 1.0))
             + i.y + vec4(0.0, i1.y, i2.y, 1.0))
             + i.x + vec4(0.0, i1.x, i2.x, 1.0));

    float n_ = 0.142857142857;
    vec3 ns = n_ * D.wyz - D.xzx;

    vec4 j = p - 49.0 * floor(p * ns.z * ns.z);

    vec4 x_ = floor(j * ns.z);
    vec4 y_ = floor(j - 7.0 * x_);

    vec4 x = x_ * ns.x + ns.yyyy;
    vec4 y = y_ * ns.x + ns.yyyy;
    vec4 h = 1.0 - abs(x) - abs(y);

    vec4 b0 = vec4(x.xy, y.xy);
    vec4 b1 = vec4(x.zw, y.zw);

    vec4 s0 = floor(b0) * 2.0 + 1.0;
    vec4 s1 = floor(b1) * 2.0 + 1.0;
    vec4 sh = -step(h, vec4(0.0));

    vec4 a0 = b0.xzyw + s0.xzyw * sh.xxyy;
    vec4 a1 = b1.xzyw + s1.xzyw * sh.zzww;

    vec3 p0 = vec3(a0.xy, h.x);
    vec3 p1 = vec3(a0.zw, h.y);
    vec3 p2 = vec3(a1.xy, h.z);
    vec3 p3 = vec3(a1.zw, h.w);

    vec4 norm = taylorInvSqrt(vec4(dot(p0, p0), dot(p1, p1), dot(p2, p2), dot(p3, p3)));
    p0 *= norm.x;
    p1 *= norm.y;
    p2 *= norm.z;
    p3 *= norm.w;

    vec4 m = max(0.6 - vec4(dot(x0, x0), dot(x1, x1), dot(x2, x2), dot(x3, x3)), 0.0);
    m = m * m;
    return 42.0 * dot(m * m, vec4(dot(p0, x0), dot(p1, x1), dot(p2, x2), dot(p3, x3)));
}

// curl of the stream function snoise: divergence-free by construction
vec2 curl(vec3 p) {
    const float e = 0.1;
    float dy = snoise(p + vec3(0.0, e, 0.0)) - snoise(p - vec3(0.0, e, 0.0));
    float dx = snoise(p + vec3(e, 0.0, 0.0)) - snoise(p - vec3(e, 0.0, 0.0));
    return vec2(dy, -dx) / (2.0 * e);
}
`

// The std140 block mirrored by feedback.UniformBlock. Field order and
// widths must not change without changing the Go side in lockstep.
const uniformBlockSource = `
layout(std140, binding = 0) uniform Params {
    float noiseScale;
    float noiseOffset;
    vec2  resolution;
};
`

const pingPongTemplate = `#version 430 core
layout(local_size_x = %d, local_size_y = %d) in;
%s
layout(binding = 0) uniform sampler2D prevState;
layout(rgba32f, binding = 0) uniform writeonly image2D nextState;
%s
void main() {
    ivec2 p = ivec2(gl_GlobalInvocationID.xy);
    if (p.x >= int(resolution.x) || p.y >= int(resolution.y)) {
        return;
    }
    vec2 uv = vec2(p) / resolution;
    vec2 prevOffset = texture(prevState, uv).xy;
    vec2 noiseCoord = noiseScale * (uv + prevOffset);
    vec2 c = curl(vec3(noiseCoord, %s));
    vec2 newOffset = prevOffset + %s * c;
    imageStore(nextState, p, vec4(newOffset, 0.0, 1.0));
}
`

const resetTemplate = `#version 430 core
layout(local_size_x = %d, local_size_y = %d) in;
layout(rgba32f, binding = 0) uniform writeonly image2D stateA;
layout(rgba32f, binding = 1) uniform writeonly image2D stateB;
void main() {
    ivec2 p = ivec2(gl_GlobalInvocationID.xy);
    ivec2 size = imageSize(stateA);
    if (p.x >= size.x || p.y >= size.y) {
        return;
    }
    imageStore(stateA, p, vec4(0.0));
    imageStore(stateB, p, vec4(0.0));
}
`

// GenerateVertexShader returns the fullscreen-quad vertex shader shared by
// the render pass and any blit-style pass.
func GenerateVertexShader() string {
	return vertexShaderSource
}

// GetRenderFragmentShader returns the display pass: warp the source image
// by the accumulated feedback offsets.
func GetRenderFragmentShader() string {
	return renderFragmentShaderSource
}

// GetPingPongComputeShader builds the feedback step kernel. The work-group
// size is baked into the source, so it must be the size derived from the
// device limits at pipeline-build time. In time-driven mode the uniform's
// second field feeds the noise field's third coordinate and the step scale
// is fixed; otherwise the field is the step scale and the noise is sampled
// on the z=0 plane.
func GetPingPongComputeShader(localX, localY int, timeDriven bool) string {
	noiseZ := "0.0"
	stepScale := "noiseOffset"
	if timeDriven {
		noiseZ = "noiseOffset"
		stepScale = fixedStepScale
	}
	return fmt.Sprintf(pingPongTemplate, localX, localY, uniformBlockSource, noiseSource, noiseZ, stepScale)
}

// GetResetComputeShader builds the kernel that zeroes both feedback
// textures in a single dispatch.
func GetResetComputeShader(localX, localY int) string {
	return fmt.Sprintf(resetTemplate, localX, localY)
}
