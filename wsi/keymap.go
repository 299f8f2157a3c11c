// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// keyFrom returns the Key value that represents a
// GLFW key code.
func keyFrom(code glfw.Key) Key {
	if code < 0 || int(code) >= len(keymap) {
		return KeyUnknown
	}
	return keymap[code]
}

var keymap = [glfw.KeyLast + 1]Key{
	glfw.Key1:            Key1,
	glfw.Key2:            Key2,
	glfw.Key3:            Key3,
	glfw.Key4:            Key4,
	glfw.Key5:            Key5,
	glfw.Key6:            Key6,
	glfw.Key7:            Key7,
	glfw.Key8:            Key8,
	glfw.Key9:            Key9,
	glfw.Key0:            Key0,
	glfw.KeyQ:            KeyQ,
	glfw.KeyW:            KeyW,
	glfw.KeyE:            KeyE,
	glfw.KeyR:            KeyR,
	glfw.KeyT:            KeyT,
	glfw.KeyY:            KeyY,
	glfw.KeyU:            KeyU,
	glfw.KeyI:            KeyI,
	glfw.KeyO:            KeyO,
	glfw.KeyP:            KeyP,
	glfw.KeyA:            KeyA,
	glfw.KeyS:            KeyS,
	glfw.KeyD:            KeyD,
	glfw.KeyF:            KeyF,
	glfw.KeyG:            KeyG,
	glfw.KeyH:            KeyH,
	glfw.KeyJ:            KeyJ,
	glfw.KeyK:            KeyK,
	glfw.KeyL:            KeyL,
	glfw.KeyZ:            KeyZ,
	glfw.KeyX:            KeyX,
	glfw.KeyC:            KeyC,
	glfw.KeyV:            KeyV,
	glfw.KeyB:            KeyB,
	glfw.KeyN:            KeyN,
	glfw.KeyM:            KeyM,
	glfw.KeyTab:          KeyTab,
	glfw.KeyEnter:        KeyReturn,
	glfw.KeySpace:        KeySpace,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyLeftShift:    KeyLShift,
	glfw.KeyRightShift:   KeyRShift,
	glfw.KeyLeftControl:  KeyLCtrl,
	glfw.KeyRightControl: KeyRCtrl,
	glfw.KeyLeftAlt:      KeyLAlt,
	glfw.KeyRightAlt:     KeyRAlt,
	glfw.KeyEscape:       KeyEsc,
	glfw.KeyUp:           KeyUp,
	glfw.KeyDown:         KeyDown,
	glfw.KeyLeft:         KeyLeft,
	glfw.KeyRight:        KeyRight,
	glfw.KeyF1:           KeyF1,
	glfw.KeyF2:           KeyF2,
	glfw.KeyF3:           KeyF3,
	glfw.KeyF4:           KeyF4,
	glfw.KeyF5:           KeyF5,
	glfw.KeyF6:           KeyF6,
	glfw.KeyF7:           KeyF7,
	glfw.KeyF8:           KeyF8,
	glfw.KeyF9:           KeyF9,
	glfw.KeyF10:          KeyF10,
	glfw.KeyF11:          KeyF11,
	glfw.KeyF12:          KeyF12,
}
