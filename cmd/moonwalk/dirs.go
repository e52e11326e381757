package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	xappdirs "github.com/chasinglogic/appdirs"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	appName        = "moonwalk"
	configFileName = "moonwalk.toml"
	logFileName    = "moonwalk.log"
)

type appDirs struct {
	Config string
	Log    string
}

func newAppDirs() appDirs {
	ad := xappdirs.New(appName)
	return appDirs{
		Config: ad.UserConfig(),
		Log:    ad.UserLog(),
	}
}

// defaultConfigPath is read when --config is not given. It may not exist.
func (d appDirs) defaultConfigPath() string {
	if d.Config == "" {
		return filepath.Join(".", configFileName)
	}
	return filepath.Join(d.Config, configFileName)
}

func (d appDirs) defaultLogPath() string {
	if d.Log == "" {
		return filepath.Join(".", logFileName)
	}
	return filepath.Join(d.Log, logFileName)
}

// openLogFile returns a rotating writer. An empty path selects the user log
// directory.
func openLogFile(path string, dirs appDirs) (io.WriteCloser, string, error) {
	if path == "" {
		path = dirs.defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, path, fmt.Errorf("failed to create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}, path, nil
}
