// pkg/env/doc.go
package env

/*
Package env turns resolved module rules into a usable build environment.

It handles:
  - Generating compiler and linker flags in the toolchain's convention
  - Checking that the prebuilt libraries and include directories exist

Basic Usage:

    import "github.com/arc-language/modrules/pkg/env"

    r, _ := rules.Resolve(target, moduleRoot)

    // Get compiler flags
    flags, err := env.GetCompilerFlags(r)
    for _, flag := range flags.IncludeFlags {
        fmt.Println(flag) // -I/work/Plugins/Substance/include
    }

    // Check the libraries are in place
    report, err := env.Verify(ctx, r)
    if !report.OK() {
        fmt.Println("missing:", report.MissingLibs)
    }

Toolchain conventions:

Windows platforms use MSVC: include directories are passed with /I, the
library directory with /LIBPATH: and libraries by file name
(substance_connector.lib). Mac and Linux use -I, -L and -l with the "lib"
prefix and ".a" extension stripped (-lsubstance_connector).
*/
