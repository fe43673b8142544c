package form

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed clientinfo.yaml
var clientInfoYAML []byte

// ClientInfo returns the built-in client information form used by sales
// staff to record a client visit.
func ClientInfo() Form {
	f, err := Parse(clientInfoYAML, "clientinfo.yaml")
	if err != nil {
		panic(err)
	}
	return f
}

// Load reads a form definition from a YAML file.
func Load(path string) (Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Form{}, err
	}
	return Parse(data, path)
}

// Parse decodes a YAML form definition and checks it.  Elements without an ID
// get their Name as ID and elements without a Type are text inputs.
func Parse(data []byte, source string) (Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, fmt.Errorf("form: file %s is empty", source)
	}
	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Form{}, fmt.Errorf("form: parse %s: %w", source, err)
	}
	for sidx := range f.Sections {
		elems := f.Sections[sidx].Elements
		for eidx := range elems {
			if elems[eidx].ID == "" {
				elems[eidx].ID = elems[eidx].Name
			}
			if elems[eidx].Type == "" {
				elems[eidx].Type = TextInput
			}
		}
	}
	if err := Validate(f); err != nil {
		return Form{}, fmt.Errorf("form: %s: %w", source, err)
	}
	return f, nil
}
