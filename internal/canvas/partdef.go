package canvas

import (
	"encoding/json"
	"fmt"

	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
)

// PartDefinition describes a component installed on the host, as listed
// by the components endpoint. Field names follow the wire.
type PartDefinition struct {
	ComponentType int    `json:"ComponentType"`
	ID            string `json:"Id"`
	Manifest      string `json:"Manifest"`
	ManifestType  int    `json:"ManifestType"`
	Name          string `json:"Name"`
	Status        int    `json:"Status"`
}

type localizedString struct {
	Default string `json:"default"`
}

type partManifest struct {
	PreconfiguredEntries []struct {
		Title       localizedString `json:"title"`
		Description localizedString `json:"description"`
		Properties  json.RawMessage `json:"properties"`
	} `json:"preconfiguredEntries"`
}

// FromPartDefinition builds a web part from an installed component's
// descriptor: the braced id is normalized and the first preconfigured
// entry provides title, description and the starting property bag. A
// manifest without entries yields a part with zero values.
func FromPartDefinition(def PartDefinition) (*WebPart, error) {
	componentID, err := guid.Parse(def.ID)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", def.Name, err)
	}

	part := &WebPart{
		id:          guid.New(),
		componentID: componentID,
		properties:  map[string]any{},
	}

	if def.Manifest == "" {
		return part, nil
	}
	var manifest partManifest
	if err := json.Unmarshal([]byte(def.Manifest), &manifest); err != nil {
		return nil, fmt.Errorf("component %q manifest: %w", def.Name, err)
	}
	if len(manifest.PreconfiguredEntries) == 0 {
		return part, nil
	}

	entry := manifest.PreconfiguredEntries[0]
	part.title = entry.Title.Default
	part.description = entry.Description.Default
	if len(entry.Properties) > 0 {
		bag, serverProcessed, err := parseProperties(entry.Properties)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", def.Name, err)
		}
		part.properties = bag
		part.serverProcessed = serverProcessed
	}
	return part, nil
}
