package domain

import "path/filepath"

const (
	// AppName is used for config, cache and data directories.
	AppName = "sigil"

	// ConfigFileName is the project-local configuration file, discovered
	// by walking up from the working directory.
	ConfigFileName = ".sigil.yaml"

	// UserConfigFileName is the configuration file inside the user config
	// directory.
	UserConfigFileName = "config.yaml"

	// SignatureDirName is the default signature directory inside the user
	// data directory.
	SignatureDirName = "signatures"

	// HistoryDirName is the placement history directory inside the user
	// cache directory.
	HistoryDirName = "history"

	// WorkDirPrefix names the per-session scratch directories holding
	// intermediate pages and rasters.
	WorkDirPrefix = "sigil-work-"

	// DebugLogFile is the name of the debug log file.
	DebugLogFile = "debug.log"

	// SignedSuffix is appended to the target name when no output path is
	// given: report.pdf becomes report.signed.pdf.
	SignedSuffix = ".signed"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// UserConfigPath returns the config file path under the given user config
// root.
func UserConfigPath(configRoot string) string {
	return filepath.Join(configRoot, AppName, UserConfigFileName)
}

// UserSignatureDir returns the fallback signature directory under the given
// user data root.
func UserSignatureDir(dataRoot string) string {
	return filepath.Join(dataRoot, AppName, SignatureDirName)
}

// HistoryDir returns the placement history directory under the given user
// cache root.
func HistoryDir(cacheRoot string) string {
	return filepath.Join(cacheRoot, AppName, HistoryDirName)
}

// SignedOutputPath derives the default output path for a signed document:
// the target path with SignedSuffix before the extension.
func SignedOutputPath(target string) string {
	ext := filepath.Ext(target)
	return target[:len(target)-len(ext)] + SignedSuffix + ext
}
