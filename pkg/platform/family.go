// pkg/platform/family.go
package platform

// Family is the closed set of platform families the precompiled
// connector libraries are shipped for. Each family fixes a library
// naming convention.
type Family int

const (
	// FamilyUnsupported is returned for platforms with no prebuilt libraries
	FamilyUnsupported Family = iota
	// FamilyWindows covers the Windows platform group (MSVC .lib files)
	FamilyWindows
	// FamilyUnix covers Mac and Linux (lib*.a archives)
	FamilyUnix
)

// FamilyOf classifies a platform. Only the Windows group, Mac and Linux
// have libraries; LinuxArm64 and everything else is unsupported.
func FamilyOf(p Platform) Family {
	switch {
	case p.IsInGroup(GroupWindows):
		return FamilyWindows
	case p == Mac, p == Linux:
		return FamilyUnix
	default:
		return FamilyUnsupported
	}
}

// String returns a readable family name
func (f Family) String() string {
	switch f {
	case FamilyWindows:
		return "windows"
	case FamilyUnix:
		return "unix"
	default:
		return "unsupported"
	}
}
