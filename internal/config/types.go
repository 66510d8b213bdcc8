package config

import "time"

const (
	SchemaVersion = 1

	DirName  = ".cabinlog"
	FileName = "config.yaml"

	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"

	DefaultStorageBackend   = StorageBackendFile
	DefaultAIModel          = "gemini-2.5-flash"
	DefaultAITimeoutSeconds = 60
	DefaultMapsEnabled      = true
	DefaultPhotoMaxDim      = 0
	DefaultReportDir        = "informes"
	DefaultLogLevel         = "info"

	MinAITimeoutSeconds = 1
	MaxAITimeoutSeconds = 300
	MinPhotoMaxDim      = 0
	MaxPhotoMaxDim      = 8192
)

type RawConfig struct {
	SchemaVersion *int        `yaml:"schemaVersion,omitempty"`
	Storage       *RawStorage `yaml:"storage,omitempty"`
	AI            *RawAI      `yaml:"ai,omitempty"`
	Maps          *RawMaps    `yaml:"maps,omitempty"`
	Photo         *RawPhoto   `yaml:"photo,omitempty"`
	Report        *RawReport  `yaml:"report,omitempty"`
	Log           *RawLog     `yaml:"log,omitempty"`
}

type RawStorage struct {
	Backend *string `yaml:"backend,omitempty"`
	Path    *string `yaml:"path,omitempty"`
}

type RawAI struct {
	Model          *string `yaml:"model,omitempty"`
	TimeoutSeconds *int    `yaml:"timeoutSeconds,omitempty"`
}

type RawMaps struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

type RawPhoto struct {
	MaxDimension *int `yaml:"maxDimension,omitempty"`
}

type RawReport struct {
	Dir *string `yaml:"dir,omitempty"`
}

type RawLog struct {
	Level *string `yaml:"level,omitempty"`
}

type ResolvedConfig struct {
	SchemaVersion int             `json:"schemaVersion" yaml:"schemaVersion"`
	Storage       ResolvedStorage `json:"storage" yaml:"storage"`
	AI            ResolvedAI      `json:"ai" yaml:"ai"`
	Maps          ResolvedMaps    `json:"maps" yaml:"maps"`
	Photo         ResolvedPhoto   `json:"photo" yaml:"photo"`
	Report        ResolvedReport  `json:"report" yaml:"report"`
	Log           ResolvedLog     `json:"log" yaml:"log"`
}

type ResolvedStorage struct {
	Backend string `json:"backend" yaml:"backend"`
	// Path is empty when the backend's default location under the project dir applies.
	Path string `json:"path" yaml:"path"`
}

type ResolvedAI struct {
	Model          string `json:"model" yaml:"model"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

func (a ResolvedAI) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type ResolvedMaps struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type ResolvedPhoto struct {
	MaxDimension int `json:"maxDimension" yaml:"maxDimension"`
}

type ResolvedReport struct {
	Dir string `json:"dir" yaml:"dir"`
}

type ResolvedLog struct {
	Level string `json:"level" yaml:"level"`
}

func DefaultResolvedConfig() ResolvedConfig {
	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Storage:       ResolvedStorage{Backend: DefaultStorageBackend},
		AI: ResolvedAI{
			Model:          DefaultAIModel,
			TimeoutSeconds: DefaultAITimeoutSeconds,
		},
		Maps:   ResolvedMaps{Enabled: DefaultMapsEnabled},
		Photo:  ResolvedPhoto{MaxDimension: DefaultPhotoMaxDim},
		Report: ResolvedReport{Dir: DefaultReportDir},
		Log:    ResolvedLog{Level: DefaultLogLevel},
	}
}
