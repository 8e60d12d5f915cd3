package tools

// LoadConfig reads a yaml file into v and then fills unset fields from their default tags.
func LoadConfig(filename string, v interface{}) error {
	if err := UnmarshalFileYaml(filename, v); err != nil {
		return err
	}

	return SetDefaults(v)
}
