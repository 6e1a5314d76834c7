package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir           string
	DataDir           string
	ConfigFile        string
	LogFile           string
	StateFile         string
	LatestVersionFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".local", "share", "badgehunt")

		defaultPaths = &Paths{
			HomeDir:           homeDir,
			DataDir:           dataDir,
			ConfigFile:        filepath.Join(homeDir, ".config", "badgehunt", "config.yaml"),
			LogFile:           filepath.Join(dataDir, "badgehunt.log"),
			StateFile:         filepath.Join(dataDir, "state.db"),
			LatestVersionFile: filepath.Join(dataDir, "latest_version.txt"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func StateFile() string {
	ensureDefaultPaths()
	return defaultPaths.StateFile
}

func LatestVersionFile() string {
	ensureDefaultPaths()
	return defaultPaths.LatestVersionFile
}
