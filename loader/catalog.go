package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const DEFAULT_TEXTURE_ROOT = "../hdr/textures"

var ErrUnknownScene = errors.New("unknown scene")

// Catalog maps scene ids to HDR files. A scene's location is "<id>/<file>"
// relative to Root.
type Catalog struct {
	Root   string            `yaml:"root"`
	Scenes map[string]string `yaml:"scenes"`
}

// DefaultCatalog lists the bundled environment maps.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Root: DEFAULT_TEXTURE_ROOT,
		Scenes: map[string]string{
			"Alexs_Apartment":         "Alexs_Apt_2k.hdr",
			"Arches_E_PineTree":       "Arches_E_PineTree_3k.hdr",
			"GrandCanyon_C_YumaPoint": "GCanyon_C_YumaPoint_3k.hdr",
			"Milkyway":                "Milkyway_small.hdr",
			"Walk_Of_Fame":            "Mans_Outside_2k.hdr",
			"PaperMill_Ruins_E":       "PaperMill_E_3k.hdr",
			"Tropical_Ruins":          "TropicalRuins_3k.hdr",
		},
	}
}

// LoadCatalog reads a YAML catalog. An empty root falls back to DEFAULT_TEXTURE_ROOT.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if c.Root == "" {
		c.Root = DEFAULT_TEXTURE_ROOT
	}
	if len(c.Scenes) == 0 {
		return nil, errors.New("catalog lists no scenes")
	}
	for id, file := range c.Scenes {
		if id == "" || file == "" {
			return nil, fmt.Errorf("catalog entry %q has no file", id)
		}
	}
	return &c, nil
}

func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Location returns the fetch location for scene id.
func (c *Catalog) Location(id string) (string, error) {
	file, ok := c.Scenes[id]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownScene, id)
	}
	return id + "/" + file, nil
}

// SceneIDs returns all scene ids, sorted.
func (c *Catalog) SceneIDs() []string {
	ids := make([]string, 0, len(c.Scenes))
	for id := range c.Scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
