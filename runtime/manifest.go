// Package runtime embeds the small support library each backend's
// generated output calls into: Euclidean division/modulus, bitvector
// rotation, the co-datatype thunk/force pair, and, for proto and dynamic
// only, the update(...) helper for non-destructive index updates. No
// resource file defines the Set(...)/Seq(...)/Multiset(...)/Map(...)
// collection constructors the generic renderer under backends/shared emits
// calls to, and the jvm, clr, gosys and cpp files define no update helper.
package runtime

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml resources
var fs embed.FS

// TargetResources lists the support files one target needs.
type TargetResources struct {
	Files []string `yaml:"files"`
}

// Manifest is the parsed form of manifest.yaml.
type Manifest struct {
	Targets map[string]TargetResources `yaml:"targets"`
}

func loadManifest() (*Manifest, error) {
	raw, err := fs.ReadFile("manifest.yaml")
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// FilesFor returns tag's runtime support files keyed by their path
// relative to the output directory root, ready to be written alongside a
// backend's generated output.
func FilesFor(tag string) (map[string][]byte, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}
	res, ok := m.Targets[tag]
	if !ok {
		return nil, fmt.Errorf("runtime: no resources registered for target %q", tag)
	}
	out := make(map[string][]byte, len(res.Files))
	for _, name := range res.Files {
		content, err := fs.ReadFile("resources/" + tag + "/" + name)
		if err != nil {
			return nil, err
		}
		out[name] = content
	}
	return out, nil
}
