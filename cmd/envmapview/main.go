// Command envmapview previews the six environment map faces seen from a
// camera position, either in an OpenGL window laid out as a cube cross or
// as a software-rendered PNG.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"envmap"
	"envmap/internal/config"
	"envmap/raster"
)

var (
	lineColour = color.RGBA{255, 255, 0, 255} // Yellow
	background = color.RGBA{25, 25, 25, 255}
)

// Camera speed in units per second
const moveSpeed = 4.0

// scene places a cube along each face direction plus a larger cube
// enclosing the camera.
func scene(cameraPos mgl32.Vec3) raster.Mesh {
	mesh := raster.Cube(cameraPos, 40)
	for _, face := range envmap.Faces() {
		mesh = mesh.Append(raster.Cube(cameraPos.Add(face.Dir().Mul(5)), 2))
	}
	return mesh
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	pngPath := flag.String("png", "", "write the software-rendered cross to this file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}
	mesh := scene(cfg.CameraPos())

	if *pngPath != "" {
		if err := writeCross(*pngPath, cfg, mesh); err != nil {
			log.Fatalln("failed to write png:", err)
		}
		log.Println("wrote", *pngPath)
		return
	}

	if err := preview(cfg, mesh); err != nil {
		log.Fatalln(err)
	}
}

func writeCross(path string, cfg config.Config, mesh raster.Mesh) error {
	img := raster.RenderCross(cfg.CameraPos(), mesh, cfg.FaceSize, lineColour, background)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func preview(cfg config.Config, mesh raster.Mesh) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(4*cfg.FaceSize, 3*cfg.FaceSize, cfg.Title, nil, nil)
	if err != nil {
		return err
	}
	window.MakeContextCurrent()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	if err := gl.Init(); err != nil {
		return err
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	gl.UseProgram(program)

	mvpUniform := gl.GetUniformLocation(program, gl.Str("mvp\x00"))
	colourUniform := gl.GetUniformLocation(program, gl.Str("colour\x00"))

	// VAO / VBO / EBO
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	vertices := mesh.Flat()
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	vertAttrib := uint32(gl.GetAttribLocation(program, gl.Str("vp\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointer(vertAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.SCISSOR_TEST)

	proj := envmap.FaceProjMatrix()
	cameraPos := cfg.CameraPos()
	// the scene spins around the initial camera position
	pivot := cameraPos

	angle := 0.0
	lastFrameTime := glfw.GetTime()
	lastFpsTime := glfw.GetTime()
	frameCount := 0

	for !window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastFrameTime
		lastFrameTime = currentTime

		frameCount++
		if currentTime-lastFpsTime >= 1.0 {
			window.SetTitle(fmt.Sprintf("%s | FPS: %d | camera %.1f %.1f %.1f",
				cfg.Title, frameCount, cameraPos.X(), cameraPos.Y(), cameraPos.Z()))
			frameCount = 0
			lastFpsTime = currentTime
		}

		cameraPos = cameraPos.Add(movement(window).Mul(float32(moveSpeed * deltaTime)))
		angle += cfg.Spin * deltaTime

		model := mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z()).
			Mul4(mgl32.HomogRotate3D(float32(angle), mgl32.Vec3{0, 1, 0})).
			Mul4(mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z()))

		// faces are drawn into cells of the framebuffer, which can be
		// larger than the window on high DPI displays
		fbWidth, _ := window.GetFramebufferSize()
		size := int32(fbWidth / 4)

		gl.ClearColor(0, 0, 0, 1.0)
		gl.Scissor(0, 0, 4*size, 3*size)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		gl.UseProgram(program)
		gl.Uniform4f(colourUniform,
			float32(lineColour.R)/255, float32(lineColour.G)/255, float32(lineColour.B)/255, 1)
		gl.BindVertexArray(vao)

		for _, face := range envmap.Faces() {
			view, err := envmap.FaceViewMatrix(cameraPos, face)
			if err != nil {
				return err
			}

			col, row := raster.CrossOffset(face)
			// GL rows count from the bottom
			x, y := int32(col)*size, int32(2-row)*size
			gl.Viewport(x, y, size, size)
			gl.Scissor(x, y, size, size)
			gl.ClearColor(float32(background.R)/255, float32(background.G)/255, float32(background.B)/255, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

			mvp := proj.Mul4(view).Mul4(model)
			gl.UniformMatrix4fv(mvpUniform, 1, false, &mvp[0])
			gl.DrawElements(gl.LINES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
		}

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// movement returns the camera direction requested by the held keys:
// A/D along X, Q/E along Y and S/W along Z.
func movement(window *glfw.Window) mgl32.Vec3 {
	axis := func(neg, pos glfw.Key) float32 {
		var v float32
		if window.GetKey(neg) == glfw.Press {
			v--
		}
		if window.GetKey(pos) == glfw.Press {
			v++
		}
		return v
	}
	return mgl32.Vec3{
		axis(glfw.KeyA, glfw.KeyD),
		axis(glfw.KeyQ, glfw.KeyE),
		axis(glfw.KeyS, glfw.KeyW),
	}
}
