package fsutil

// File and directory permission constants.
const (
	// FileModeDefault is used for config files and test fixtures: -rw-r--r--.
	FileModeDefault = 0o644
	// DirModeDefault is used for directories we create: drwxr-xr-x.
	DirModeDefault = 0o755
)

const (
	// AppName is the name of the application used in paths.
	AppName = "nugetclean"

	// PackagesEnvVar overrides the location of the NuGet global packages folder.
	PackagesEnvVar = "NUGET_PACKAGES"

	// ToolsDirName is the reserved cache child holding one package-shaped directory per tool.
	ToolsDirName = ".tools"

	// LockProbePrefix is prepended to a version directory name when it is renamed
	// before removal.
	LockProbePrefix = "_"
)
