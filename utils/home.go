package utils

import (
	"os"
	"os/user"
	"path/filepath"
)

// Version is the current walletkeep build version. Migration tags registered
// in the vault package must never be newer than this.
var Version = "1.1.2"

// HomeDir returns the current user's home directory. It is used as the base
// for the default storage location.
func HomeDir() string {
	if v := os.Getenv("HOME"); v != "" {
		return v
	}
	currentUser, err := user.Current()
	if err != nil {
		panic(err)
	}
	return currentUser.HomeDir
}

// DataDir returns the default directory for walletkeep data files.
func DataDir() string {
	return filepath.Join(HomeDir(), ".walletkeep")
}
