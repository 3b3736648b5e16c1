package config

// Configfile represents the structure of the apiroutes.yaml configuration file.
type Configfile struct {
	Version       string      `yaml:"version"`
	Root          string      `yaml:"root"`
	AppDir        string      `yaml:"appDir"`
	OutDir        string      `yaml:"outDir"`
	Port          int         `yaml:"port"`
	Mode          string      `yaml:"mode"`
	ShouldThrow   bool        `yaml:"shouldThrow"`
	EvictOnSettle bool        `yaml:"evictOnSettle"`
	Bundler       *BundlerDTO `yaml:"bundler"`
}

// BundlerDTO represents the bundler section of the configuration.
type BundlerDTO struct {
	Kind    string            `yaml:"kind"`
	Command []string          `yaml:"command"`
	Env     map[string]string `yaml:"env"`
}
