package shader

// ────────────────────────────── Built-in vertex stage ──────────────────────────────

// The full-screen triangle is synthesized from gl_VertexID; no vertex buffer
// is bound. Vertices land at (-1,-1), (3,-1) and (-1,3).

const vertexShaderSourceGL = `#version 410 core
out vec2 frag_uv;
void main() {
    vec2 p = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
    frag_uv = p;
    gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const vertexShaderSourceGLES = `#version 300 es
out vec2 frag_uv;
void main() {
    vec2 p = vec2(float((gl_VertexID << 1) & 2), float(gl_VertexID & 2));
    frag_uv = p;
    gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

// GenerateVertexShader returns the built-in full-screen triangle vertex stage,
// used when no vertex source is configured.
func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}
