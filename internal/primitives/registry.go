package primitives

import (
	"github.com/go-gl/mathgl/mgl64"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind is a unit mesh the registry can draw.
type Kind string

const (
	Cube     Kind = "cube"
	Sphere   Kind = "sphere"
	Cylinder Kind = "cylinder"
	Cone     Kind = "cone"
	Plane    Kind = "plane"
)

// cached holds mesh and material for a primitive kind. Created lazily on first Draw.
// offset shifts the raylib mesh so it is centered on the origin.
type cached struct {
	mesh   rl.Mesh
	mtl    rl.Material
	offset rl.Matrix
}

// Registry maps primitive kinds to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[Kind]cached
	shader   rl.Shader
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes loaded.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const (
	sphereRings   = 16
	sphereSlices  = 16
	roundSlices   = 24
	planeSubdivXZ = 1
)

// Every mesh is unit sized: side 1, diameter 1, height 1.
func genMesh(k Kind) (rl.Mesh, rl.Matrix, bool) {
	ident := rl.MatrixIdentity()
	switch k {
	case Cube:
		return rl.GenMeshCube(1, 1, 1), ident, true
	case Sphere:
		return rl.GenMeshSphere(0.5, sphereRings, sphereSlices), ident, true
	case Cylinder:
		// Raylib cylinder: base Y=0, top Y=height.
		return rl.GenMeshCylinder(0.5, 1, roundSlices), rl.MatrixTranslate(0, -0.5, 0), true
	case Cone:
		// Radius 1 so the model scale is the base radius.
		return rl.GenMeshCone(1, 1, roundSlices), rl.MatrixTranslate(0, -0.5, 0), true
	case Plane:
		return rl.GenMeshPlane(1, 1, planeSubdivXZ, planeSubdivXZ), ident, true
	}
	return rl.Mesh{}, ident, false
}

func (r *Registry) ensure(k Kind) (cached, bool) {
	if c, ok := r.cache[k]; ok {
		return c, true
	}
	mesh, offset, ok := genMesh(k)
	if !ok {
		return cached{}, false
	}
	if !rl.IsShaderValid(r.shader) {
		r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	}
	mtl := rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	c := cached{mesh: mesh, mtl: mtl, offset: offset}
	r.cache[k] = c
	return c, true
}

// litVS/litFS: directional light + ambient + specular. Same vertex attributes as raylib meshes.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

var (
	ambient    = [4]float32{0.2, 0.22, 0.26, 1.0}
	lightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	lightIntensity   = float32(0.75)
	specularPower    = float32(48.0)
	specularStrength = float32(0.35)
)

// setUniforms sets the per-frame light uniforms (cgo-safe: local arrays).
func (r *Registry) setUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightDir := r.lightDir
	amb := ambient
	col := lightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, col[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{lightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

// Matrix converts a column-major mgl64 matrix to raylib's layout.
func Matrix(m mgl64.Mat4) rl.Matrix {
	f := func(i int) float32 { return float32(m[i]) }
	return rl.Matrix{
		M0: f(0), M1: f(1), M2: f(2), M3: f(3),
		M4: f(4), M5: f(5), M6: f(6), M7: f(7),
		M8: f(8), M9: f(9), M10: f(10), M11: f(11),
		M12: f(12), M13: f(13), M14: f(14), M15: f(15),
	}
}

// Draw draws one instance of kind with the given model transform and tint.
// Must be called between BeginMode3D and EndMode3D, after SetView. Unknown kinds are skipped.
func (r *Registry) Draw(k Kind, model mgl64.Mat4, tint rl.Color) {
	c, ok := r.ensure(k)
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setUniforms(c.mtl.Shader)
	// raylib multiplies row vectors: offset is applied first, then the model.
	rl.DrawMesh(c.mesh, c.mtl, rl.MatrixMultiply(c.offset, Matrix(model)))
}

// Unload frees every cached mesh and the shared shader. Call before the window closes.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, k)
	}
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
}
