package systems

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/spaghettifunk/pointfield/engine/core"
	"github.com/spaghettifunk/pointfield/engine/math"
	"github.com/spaghettifunk/pointfield/engine/renderer/metadata"
)

/**
 * @brief Writes data into the bound program. Value entries go first, then
 * textures on units 0, 1, 2, ... in order. A failing entry is skipped and
 * its error joined into the result; the other entries are still written.
 */
func (ss *ShaderSystem) ApplyUniforms(data *metadata.UniformData, textures *TextureSystem) error {
	if ss.bound == nil {
		return ErrNoBoundShader
	}
	if data == nil {
		return nil
	}

	var errs []error
	var unit uint32
	for _, e := range data.Entries() {
		location, ok := ss.bound.Location(e.Name)
		if !ok {
			errs = append(errs, &UnknownUniformError{Name: e.Name})
			continue
		}

		if e.Kind == metadata.UniformKindTexture {
			name, _ := e.Value.(string)
			if textures == nil {
				errs = append(errs, &TextureNotFoundError{Name: name})
				continue
			}
			t, err := textures.Get(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			ss.backend.ActiveTexture(unit)
			ss.backend.BindTexture(t.ID())
			ss.backend.Uniform1i(location, int32(unit))
			unit++
			continue
		}

		if err := ss.writeValue(location, e); err != nil {
			errs = append(errs, err)
		}
	}

	if unit > 0 {
		ss.backend.ActiveTexture(0)
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		core.LogWarn("uniforms partially applied to %s: %s", ss.bound.Name(), err)
		return err
	}
	return nil
}

func (ss *ShaderSystem) writeValue(location int32, e metadata.UniformEntry) error {
	b := ss.backend
	ok := true
	switch e.Kind {
	case metadata.UniformKindFloat:
		var v float32
		if v, ok = e.Value.(float32); ok {
			b.Uniform1f(location, v)
		}
	case metadata.UniformKindInt:
		var v int32
		if v, ok = e.Value.(int32); ok {
			b.Uniform1i(location, v)
		}
	case metadata.UniformKindUint:
		var v uint32
		if v, ok = e.Value.(uint32); ok {
			b.Uniform1ui(location, v)
		}
	case metadata.UniformKindVec2:
		var v mgl32.Vec2
		if v, ok = e.Value.(mgl32.Vec2); ok {
			b.Uniform2fv(location, v)
		}
	case metadata.UniformKindVec3:
		var v mgl32.Vec3
		if v, ok = e.Value.(mgl32.Vec3); ok {
			b.Uniform3fv(location, v)
		}
	case metadata.UniformKindVec4:
		var v mgl32.Vec4
		if v, ok = e.Value.(mgl32.Vec4); ok {
			b.Uniform4fv(location, v)
		}
	case metadata.UniformKindIVec2:
		var v math.IVec2
		if v, ok = e.Value.(math.IVec2); ok {
			b.Uniform2iv(location, v)
		}
	case metadata.UniformKindIVec3:
		var v math.IVec3
		if v, ok = e.Value.(math.IVec3); ok {
			b.Uniform3iv(location, v)
		}
	case metadata.UniformKindIVec4:
		var v math.IVec4
		if v, ok = e.Value.(math.IVec4); ok {
			b.Uniform4iv(location, v)
		}
	case metadata.UniformKindUVec2:
		var v math.UVec2
		if v, ok = e.Value.(math.UVec2); ok {
			b.Uniform2uiv(location, v)
		}
	case metadata.UniformKindUVec3:
		var v math.UVec3
		if v, ok = e.Value.(math.UVec3); ok {
			b.Uniform3uiv(location, v)
		}
	case metadata.UniformKindUVec4:
		var v math.UVec4
		if v, ok = e.Value.(math.UVec4); ok {
			b.Uniform4uiv(location, v)
		}
	case metadata.UniformKindMat2:
		var v mgl32.Mat2
		if v, ok = e.Value.(mgl32.Mat2); ok {
			b.UniformMatrix2fv(location, v)
		}
	case metadata.UniformKindMat3:
		var v mgl32.Mat3
		if v, ok = e.Value.(mgl32.Mat3); ok {
			b.UniformMatrix3fv(location, v)
		}
	case metadata.UniformKindMat4:
		var v mgl32.Mat4
		if v, ok = e.Value.(mgl32.Mat4); ok {
			b.UniformMatrix4fv(location, v)
		}
	default:
		ok = false
	}
	if !ok {
		return fmt.Errorf("uniform %q: value %T does not match kind %s", e.Name, e.Value, e.Kind)
	}
	return nil
}
