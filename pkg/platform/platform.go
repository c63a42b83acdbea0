// pkg/platform/platform.go
package platform

import (
	"fmt"
	"strings"
)

// Platform is a target platform identifier as the engine's build
// orchestrator spells it (e.g. "Win64", "Mac", "Linux")
type Platform string

const (
	Win64      Platform = "Win64"
	Win32      Platform = "Win32"
	HoloLens   Platform = "HoloLens"
	Mac        Platform = "Mac"
	IOS        Platform = "IOS"
	TVOS       Platform = "TVOS"
	Android    Platform = "Android"
	Linux      Platform = "Linux"
	LinuxArm64 Platform = "LinuxArm64"
	PS4        Platform = "PS4"
	PS5        Platform = "PS5"
	XboxOne    Platform = "XboxOne"
	XSX        Platform = "XSX"
	Switch     Platform = "Switch"
)

// All returns every known platform in a deterministic order
func All() []Platform {
	return []Platform{
		Win64, Win32, HoloLens,
		Mac, IOS, TVOS,
		Android,
		Linux, LinuxArm64,
		PS4, PS5,
		XboxOne, XSX,
		Switch,
	}
}

// String returns the canonical form of the platform identifier
func (p Platform) String() string {
	return string(p)
}

// Parse looks up a platform by name. Matching is case-insensitive so
// "win64" and "Win64" both resolve to Win64.
func Parse(name string) (Platform, error) {
	for _, p := range All() {
		if strings.EqualFold(string(p), name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %q", name)
}

// Group is a family of related platforms sharing toolchain conventions
type Group string

const (
	GroupWindows   Group = "Windows"
	GroupMicrosoft Group = "Microsoft"
	GroupApple     Group = "Apple"
	GroupUnix      Group = "Unix"
	GroupLinux     Group = "Linux"
	GroupAndroid   Group = "Android"
	GroupDesktop   Group = "Desktop"
	GroupSony      Group = "Sony"
)

var groupMembers = map[Group][]Platform{
	GroupWindows:   {Win64, Win32},
	GroupMicrosoft: {Win64, Win32, HoloLens, XboxOne, XSX},
	GroupApple:     {Mac, IOS, TVOS},
	GroupUnix:      {Mac, Linux, LinuxArm64},
	GroupLinux:     {Linux, LinuxArm64},
	GroupAndroid:   {Android},
	GroupDesktop:   {Win64, Win32, Mac, Linux, LinuxArm64},
	GroupSony:      {PS4, PS5},
}

// IsInGroup reports whether p belongs to group g
func (p Platform) IsInGroup(g Group) bool {
	return contains(groupMembers[g], p)
}

// Groups returns the groups p belongs to, in a stable order
func (p Platform) Groups() []Group {
	order := []Group{
		GroupWindows, GroupMicrosoft, GroupApple, GroupUnix,
		GroupLinux, GroupAndroid, GroupDesktop, GroupSony,
	}

	var groups []Group
	for _, g := range order {
		if p.IsInGroup(g) {
			groups = append(groups, g)
		}
	}
	return groups
}
