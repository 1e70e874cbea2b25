package main

import (
	"flag"
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"terragrid/heightfield"
	"terragrid/internal/config"
	"terragrid/internal/graphics"
	"terragrid/internal/profiling"
	"terragrid/internal/terrain"
	"terragrid/mesh"
)

func init() { runtime.LockOSThread() }

const (
	winW = 900
	winH = 600

	terrainSize = 100.0
)

const vertexShaderSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 fragNormal;
out float height;

void main() {
	gl_Position = projection * view * model * vec4(aPos, 1.0);
	fragNormal = mat3(model) * aNormal;
	height = aPos.z;
}`

const fragmentShaderSrc = `#version 410 core
in vec3 fragNormal;
in float height;

uniform vec3 lightDir;
uniform float minHeight;
uniform float maxHeight;

out vec4 fragColor;

void main() {
	float t = clamp((height - minHeight) / max(maxHeight - minHeight, 0.001), 0.0, 1.0);
	vec3 low = vec3(0.25, 0.45, 0.2);
	vec3 mid = vec3(0.55, 0.45, 0.3);
	vec3 high = vec3(0.9, 0.9, 0.95);
	vec3 base = t < 0.5 ? mix(low, mid, t * 2.0) : mix(mid, high, t * 2.0 - 1.0);
	float diffuse = max(dot(normalize(fragNormal), normalize(lightDir)), 0.0);
	fragColor = vec4(base * (0.35 + 0.65 * diffuse), 1.0);
}`

func main() {
	seed := flag.Int64("seed", config.GetSeed(), "generation seed")
	exponent := flag.Int("n", config.GetExponent(), "grid side is 2^n+1 vertices")
	flag.Parse()
	config.SetSeed(*seed)
	config.SetExponent(*exponent)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	if err := gl.Init(); err != nil {
		panic(err)
	}
	gl.Enable(gl.DEPTH_TEST)

	shader, err := graphics.NewShader(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		panic(err)
	}

	terrain := buildTerrain(config.GetSeed(), config.GetExponent())
	vao, vbo, vertexCount := uploadTerrain(terrain)

	camera := graphics.NewOrbitCamera(mgl32.Vec3{0, 0, 0}, 1.6*terrainSize, winW, winH)

	var dragging bool
	var lastX, lastY float64
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			dragging = action == glfw.Press
			lastX, lastY = w.GetCursorPos()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if dragging {
			camera.Rotate(float32(xpos-lastX)*0.4, float32(ypos-lastY)*0.4)
			lastX, lastY = xpos, ypos
		}
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		camera.Zoom(float32(yoff))
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		camera.Resize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyW:
			config.ToggleWireframe()
		case glfw.KeyR:
			config.SetSeed(config.GetSeed() + 1)
			terrain = buildTerrain(config.GetSeed(), config.GetExponent())
			gl.DeleteVertexArrays(1, &vao)
			gl.DeleteBuffers(1, &vbo)
			vao, vbo, vertexCount = uploadTerrain(terrain)
		case glfw.KeyEqual:
			config.SetExaggeration(config.GetExaggeration() * 1.25)
		case glfw.KeyMinus:
			config.SetExaggeration(config.GetExaggeration() / 1.25)
		case glfw.KeyP:
			fmt.Println("frame profile:", profiling.TopN(5))
		}
	})

	// Grid local frame is z-up; rotate into GL's y-up and center on origin.
	baseModel := mgl32.Translate3D(-terrainSize/2, 0, terrainSize/2).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-90)))

	for !window.ShouldClose() {
		profiling.Reset()

		gl.ClearColor(0.53, 0.74, 0.95, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		if config.GetWireframe() {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}

		model := mgl32.Scale3D(1, config.GetExaggeration(), 1).Mul4(baseModel)
		view := camera.ViewMatrix()
		projection := camera.ProjectionMatrix()
		minH, maxH := terrain.Range()

		shader.Use()
		shader.SetMatrix4("model", &model[0])
		shader.SetMatrix4("view", &view[0])
		shader.SetMatrix4("projection", &projection[0])
		shader.SetVector3("lightDir", 0.4, 0.8, 0.3)
		shader.SetFloat("minHeight", minH)
		shader.SetFloat("maxHeight", maxH)

		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, vertexCount)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "terraview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// uploadTerrain tessellates the grid and uploads the interleaved pos+normal
// stream, returning the VAO, VBO and vertex count.
func uploadTerrain(m *heightfield.Heightfield[float32]) (vao, vbo uint32, count int32) {
	vertices := mesh.FromHeightfield(m).Interleave()

	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	stride := int32(mesh.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	return vao, vbo, int32(len(vertices) / mesh.VertexStride)
}

func buildTerrain(seed int64, n int) *heightfield.Heightfield[float32] {
	defer profiling.Track("terraview.buildTerrain")()
	return terrain.Build(terrain.Params{
		Seed:     seed,
		Exponent: n,
		Size:     terrainSize,
	})
}
