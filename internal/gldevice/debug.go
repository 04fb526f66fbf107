package gldevice

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// EnableDebug logs GL debug messages at or above the given severity, for
// example gl.DEBUG_SEVERITY_MEDIUM. Notifications are never logged.
func EnableDebug(minSeverity uint32) {
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, user unsafe.Pointer) {
		if severityRank(severity) < severityRank(minSeverity) {
			return
		}
		log.Printf("%v(%v): %v; %v\n", sourceString(source), severityString(severity), typeString(gltype), message)
	}, nil)
	gl.Enable(gl.DEBUG_OUTPUT)
}

func severityRank(severity uint32) int {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return 3
	case gl.DEBUG_SEVERITY_MEDIUM:
		return 2
	case gl.DEBUG_SEVERITY_LOW:
		return 1
	}
	return 0
}

func severityString(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "high"
	case gl.DEBUG_SEVERITY_LOW:
		return "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "medium"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "notification"
	}
	return "unknown"
}

func sourceString(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "application"
	case gl.DEBUG_SOURCE_OTHER:
		return "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "windowSystem"
	}
	return "unknownSource"
}

func typeString(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "deprecatedBehavior"
	case gl.DEBUG_TYPE_MARKER:
		return "marker"
	case gl.DEBUG_TYPE_OTHER:
		return "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "performance"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "popGroup"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "portability"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "pushGroup"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "undefinedBehavior"
	}
	return "unknownType"
}
