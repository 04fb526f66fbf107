package gldevice

import (
	"fmt"
	"reflect"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Load uploads every field of the struct pointed to by v that carries a
// uniform tag. The program must be in use.
//
// Supported field types are the mgl32 and mgl64 vectors, the mgl32 square
// matrices, int32, uint32, float32, float64 and fixed size arrays of those.
func (p *Program) Load(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("gldevice: Load wants a pointer to a struct, got %T", v)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		name := rt.Field(i).Tag.Get("uniform")
		if name == "" {
			continue
		}
		if err := p.upload(p.Location(name), rv.Field(i)); err != nil {
			return fmt.Errorf("gldevice: uniform %v: %w", name, err)
		}
	}
	return nil
}

var (
	typeVec2f  = reflect.TypeOf(mgl32.Vec2{})
	typeVec3f  = reflect.TypeOf(mgl32.Vec3{})
	typeVec4f  = reflect.TypeOf(mgl32.Vec4{})
	typeVec2d  = reflect.TypeOf(mgl64.Vec2{})
	typeVec3d  = reflect.TypeOf(mgl64.Vec3{})
	typeVec4d  = reflect.TypeOf(mgl64.Vec4{})
	typeMat2f  = reflect.TypeOf(mgl32.Mat2{})
	typeMat3f  = reflect.TypeOf(mgl32.Mat3{})
	typeMat4f  = reflect.TypeOf(mgl32.Mat4{})
	typeInt    = reflect.TypeOf(int32(0))
	typeUint   = reflect.TypeOf(uint32(0))
	typeFloat  = reflect.TypeOf(float32(0))
	typeDouble = reflect.TypeOf(float64(0))
)

func (p *Program) upload(loc int32, f reflect.Value) error {
	if !f.CanAddr() {
		return fmt.Errorf("unaddressable %v", f.Type())
	}
	ptr := f.Addr().UnsafePointer()
	count := int32(1)

SwitchElem:
	switch f.Type() {
	case typeVec2f:
		gl.Uniform2fv(loc, count, (*float32)(ptr))
	case typeVec3f:
		gl.Uniform3fv(loc, count, (*float32)(ptr))
	case typeVec4f:
		gl.Uniform4fv(loc, count, (*float32)(ptr))
	case typeVec2d:
		gl.Uniform2dv(loc, count, (*float64)(ptr))
	case typeVec3d:
		gl.Uniform3dv(loc, count, (*float64)(ptr))
	case typeVec4d:
		gl.Uniform4dv(loc, count, (*float64)(ptr))
	case typeMat2f:
		gl.UniformMatrix2fv(loc, count, false, (*float32)(ptr))
	case typeMat3f:
		gl.UniformMatrix3fv(loc, count, false, (*float32)(ptr))
	case typeMat4f:
		gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
	case typeInt:
		gl.Uniform1iv(loc, count, (*int32)(ptr))
	case typeUint:
		gl.Uniform1uiv(loc, count, (*uint32)(ptr))
	case typeFloat:
		gl.Uniform1fv(loc, count, (*float32)(ptr))
	case typeDouble:
		gl.Uniform1dv(loc, count, (*float64)(ptr))
	default:
		if f.Kind() == reflect.Array && count == 1 && f.Len() > 0 {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}
		return fmt.Errorf("unsupported type %v", f.Type())
	}
	return nil
}
