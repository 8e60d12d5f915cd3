package tools

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// UnmarshalFileYaml decodes filename into v. An empty file leaves v untouched.
func UnmarshalFileYaml(filename string, v interface{}) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrapf(err, "read config %s", filename)
	}
	if err = UnmarshalYaml(content, v); err != nil {
		return errors.Wrapf(err, "parse config %s", filename)
	}
	return nil
}

func UnmarshalYaml(content []byte, v interface{}) error {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	return yaml.Unmarshal(content, v)
}
