// pkg/rules/constants.go
package rules

const (
	// ModuleName is the engine module these rules describe
	ModuleName = "SubstanceConnector"

	// PCHUsage is the precompiled header mode of the module
	PCHUsage = "UseExplicitOrSharedPCHs"

	// PrivatePCHHeaderFile is relative to the module root
	PrivatePCHHeaderFile = "Private/SubstanceConnectorPrivatePCH.h"
)

// libraryLayout fixes how prebuilt static libraries are named for a
// platform family
type libraryLayout struct {
	Prefix    string
	Extension string
	Bases     []string
}

var windowsLibraries = libraryLayout{
	Prefix:    "",
	Extension: ".lib",
	Bases: []string{
		"jsoncpp_static",
		"substance_connector",
		"substanceconnector_framework",
	},
}

var unixLibraries = libraryLayout{
	Prefix:    "lib",
	Extension: ".a",
	Bases: []string{
		"jsoncpp",
		"substance_connector",
		"substanceconnector_framework",
	},
}

var privateDependencies = []string{
	"Projects",
	"Slate",
	"SlateCore",
	"SubstanceEditor",
	"ContentBrowser",
	"ContentBrowserData",
	"USDStageImporter",
	"UnrealUSDWrapper",
	"USDClasses",
	"USDSchemas",
	"USDStage",
	"USDUtilities",
	"Engine",
}

var publicDependencies = []string{
	"AssetRegistry",
	"Core",
	"CoreUObject",
	"Json",
	"SubstanceEditor",
	"UnrealEd",
	"AssetTools",
	"Settings",
}
