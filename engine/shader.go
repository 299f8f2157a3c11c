// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	_ "embed"
	"log"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gviegas/krystall/render"
	"github.com/pkg/errors"
)

// DefaultVertexShader and DefaultFragmentShader are the
// built-in shader stages.
//
//go:embed shaders/default.vert
var DefaultVertexShader string

//go:embed shaders/default.frag
var DefaultFragmentShader string

// Vertex attribute locations expected by the renderer.
const (
	attrPosition = 0
	attrNormal   = 1
)

func stageName(stage uint32) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

// infoLog trims the NUL terminator (and anything after
// it) from a GL info log.
func infoLog(buf []byte) string {
	for i, c := range buf {
		if c == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func compileShader(stage uint32, src string) (uint32, error) {
	sh := gl.CreateShader(stage)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var ok int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, int32(len(buf)), &n, &buf[0])
		msg := infoLog(buf)
		log.Printf("engine: %s shader:\n%s", stageName(stage), msg)
		gl.DeleteShader(sh)
		return 0, errors.Wrapf(render.ErrShaderCompile, "%s shader: %q", stageName(stage), msg)
	}
	return sh, nil
}

func linkProgram(vs, fs string) (uint32, error) {
	v, err := compileShader(gl.VERTEX_SHADER, vs)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(v)
	f, err := compileShader(gl.FRAGMENT_SHADER, fs)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(f)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, v)
	gl.AttachShader(prog, f)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, v)
	gl.DetachShader(prog, f)

	var ok int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		buf := make([]byte, n+1)
		gl.GetProgramInfoLog(prog, int32(len(buf)), &n, &buf[0])
		msg := infoLog(buf)
		log.Printf("engine: link:\n%s", msg)
		gl.DeleteProgram(prog)
		return 0, errors.Wrapf(render.ErrShaderLink, "%q", msg)
	}
	return prog, nil
}
