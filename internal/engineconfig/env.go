package engineconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const envPrefix = "RENDERCORE_"

// readEnvFile parses KEY=VALUE lines from path. Empty lines and lines starting with # are
// skipped and surrounding quotes are removed. Only RENDERCORE_* keys are kept. A missing file
// yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	vars := make(map[string]string)
	if path == "" {
		return vars, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		vars[key] = value
	}
	return vars, scanner.Err()
}

// applyEnv sets the fields named by RENDERCORE_* keys:
//
//	WIDTH, HEIGHT, FPS                  window
//	MANIFEST, ASSET_DIRS (path list)    assets
//	LOG_LEVEL, LOG_FILE                 logging
//	SHOW_FPS, SHOW_STATS, SHOW_GRID     overlays
func applyEnv(c *Config, vars map[string]string) error {
	for key, value := range vars {
		var err error
		switch strings.TrimPrefix(key, envPrefix) {
		case "WIDTH":
			c.Window.Width, err = strconv.Atoi(value)
		case "HEIGHT":
			c.Window.Height, err = strconv.Atoi(value)
		case "FPS":
			c.Window.TargetFPS, err = strconv.Atoi(value)
		case "MANIFEST":
			c.Manifest = value
		case "ASSET_DIRS":
			c.AssetDirs = filepath.SplitList(value)
		case "LOG_LEVEL":
			c.LogLevel = value
		case "LOG_FILE":
			c.LogFile = value
		case "SHOW_FPS":
			c.ShowFPS, err = strconv.ParseBool(value)
		case "SHOW_STATS":
			c.ShowStats, err = strconv.ParseBool(value)
		case "SHOW_GRID":
			c.ShowGrid, err = strconv.ParseBool(value)
		}
		if err != nil {
			return fmt.Errorf("%s=%q: %w", key, value, err)
		}
	}
	return nil
}
