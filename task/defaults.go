package task

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/libcommon/taskkit/errors"
)

// LoadDefaults reads task field values from a TOML or YAML file and returns
// them as a plain mapping suitable for Merge. The format is chosen by file
// extension: .toml, .yaml, or .yml.
//
// Typical use is seeding a task with file-backed defaults before merging
// parsed command line arguments over them:
//
//	defaults, err := task.LoadDefaults("worms.toml")
//	// handle err
//	t := &WormsTask{}
//	task.Merge(t, defaults)
//	task.Merge(t, args)
func LoadDefaults(path string) (map[string]interface{}, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		values := make(map[string]interface{})
		if _, err := toml.DecodeFile(path, &values); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCodeInvalidInput,
				fmt.Sprintf("decoding defaults file %s", path))
		}
		return values, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCodeInvalidInput,
				fmt.Sprintf("reading defaults file %s", path))
		}
		values := make(map[string]interface{})
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrCodeInvalidInput,
				fmt.Sprintf("decoding defaults file %s", path))
		}
		return values, nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported defaults format %q", filepath.Ext(path)))
	}
}
