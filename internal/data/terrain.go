package data

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapInfo holds metadata for the settlement map, loaded from map_list.yaml.
type MapInfo struct {
	Name     string `yaml:"name"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	TileFile string `yaml:"tile_file"`
}

type mapListFile struct {
	Map MapInfo `yaml:"map"`
}

// LoadTerrain loads the map description from YAML and the tile flags from
// its CSV tile file. The returned flat array is indexed [x*height + y],
// row-major by X, matching the grid layout.
func LoadTerrain(yamlPath, tileDir string) (MapInfo, []byte, error) {
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		return MapInfo{}, nil, fmt.Errorf("read map list %s: %w", yamlPath, err)
	}
	var file mapListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return MapInfo{}, nil, fmt.Errorf("parse map list: %w", err)
	}

	info := file.Map
	if info.Width <= 0 || info.Height <= 0 {
		return MapInfo{}, nil, fmt.Errorf("map %q: bad dimensions %dx%d", info.Name, info.Width, info.Height)
	}

	tiles, err := loadTileFile(filepath.Join(tileDir, info.TileFile), info.Width, info.Height)
	if err != nil {
		return MapInfo{}, nil, fmt.Errorf("load tiles for %q: %w", info.Name, err)
	}
	return info, tiles, nil
}

// loadTileFile reads a CSV tile file: each line is a row of comma-separated
// byte values, file rows = Y lines, columns = X values. Lines starting with
// '#' are comments.
func loadTileFile(path string, xSize, ySize int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tiles := make([]byte, xSize*ySize)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)

	y := 0
	for scanner.Scan() && y < ySize {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		x := 0
		for _, tok := range strings.Split(line, ",") {
			if x >= xSize {
				break
			}
			val, err := strconv.ParseInt(strings.TrimSpace(tok), 10, 16)
			if err != nil {
				val = 0
			}
			tiles[x*ySize+y] = byte(val)
			x++
		}
		y++
	}

	return tiles, scanner.Err()
}
