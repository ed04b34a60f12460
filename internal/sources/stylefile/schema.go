package stylefile

// File is the top-level structure of styles.yaml.
type File struct {
	Styles []StyleProps `yaml:"styles"`
}

// StyleProps describes one preset as written by an operator.
type StyleProps struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label,omitempty"`
	Hint  string `yaml:"hint,omitempty"`
}
