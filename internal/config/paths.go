package config

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/gradebook/internal/messages"
)

// DirName is the per-user gradebook directory under the home directory.
const DirName = ".gradebook"

// Paths holds resolved paths for the config file and data.
type Paths struct {
	Root       string
	ConfigPath string
	DataDir    string
	LogPath    string
}

// DefaultPaths returns the default paths under root (normally ~/.gradebook).
func DefaultPaths(root string) Paths {
	return Paths{
		Root:       root,
		ConfigPath: filepath.Join(root, "config.toml"),
		DataDir:    filepath.Join(root, "data"),
		LogPath:    filepath.Join(root, "gradebook.log"),
	}
}

var homeDir = homedir.Dir

// UserPaths returns DefaultPaths rooted at ~/.gradebook.
func UserPaths() (Paths, error) {
	home, err := homeDir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	return DefaultPaths(filepath.Join(home, DirName)), nil
}

// ExpandPath expands a leading ~ in path.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	return expanded, nil
}
