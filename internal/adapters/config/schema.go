package config

// Configfile represents the structure of the fftwlink.yaml configuration file.
// Every field is optional; absent fields keep their defaults.
type Configfile struct {
	Version   string                 `yaml:"version"`
	Strategy  string                 `yaml:"strategy"`
	Target    *TargetDTO             `yaml:"target"`
	Dirs      DirsDTO                `yaml:"dirs"`
	Jobs      int                    `yaml:"jobs"`
	Download  DownloadDTO            `yaml:"download"`
	Archiver  ArchiverDTO            `yaml:"archiver"`
	Source    SourceDTO              `yaml:"source"`
	Platforms map[string]PlatformDTO `yaml:"platforms"`
	Emit      EmitDTO                `yaml:"emit"`
}

// TargetDTO overrides the target platform.
type TargetDTO struct {
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`
}

// DirsDTO holds directory overrides. Relative paths resolve against the manifest directory.
type DirsDTO struct {
	Out         string `yaml:"out"`
	State       string `yaml:"state"`
	Precompiled string `yaml:"precompiled"`
	Source      string `yaml:"source"`
}

// DownloadDTO configures the remote archive.
type DownloadDTO struct {
	URL       string `yaml:"url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Archive   string `yaml:"archive"`
	SHA256    string `yaml:"sha256"`
	ABISuffix string `yaml:"abi_suffix"`
}

// ArchiverDTO configures the import library tool.
type ArchiverDTO struct {
	Command string `yaml:"command"`
	Machine string `yaml:"machine"`
}

// SourceDTO configures source builds.
type SourceDTO struct {
	ConfigureFlags []string `yaml:"configure_flags"`
	SingleFlag     string   `yaml:"single_flag"`
}

// PlatformDTO overrides one row of the platform table.
type PlatformDTO struct {
	Dir        string `yaml:"dir"`
	Link       string `yaml:"link"`
	SearchPath *bool  `yaml:"search_path"`
}

// EmitDTO configures link plan rendering.
type EmitDTO struct {
	Format       string   `yaml:"format"`
	Output       string   `yaml:"output"`
	Package      string   `yaml:"package"`
	ExtraLDFlags []string `yaml:"extra_ldflags"`
}
