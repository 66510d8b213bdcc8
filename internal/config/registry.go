package config

import "strconv"

type OptionType string

const (
	OptionTypeBool   OptionType = "bool"
	OptionTypeInt    OptionType = "int"
	OptionTypeString OptionType = "string"
	OptionTypeEnum   OptionType = "enum"
)

type IntBounds struct {
	Min int
	Max int
}

type OptionMetadata struct {
	KeyPath     string
	Type        OptionType
	Default     string
	Bounds      *IntBounds
	Choices     []string
	Description string
}

const (
	KeyStorageBackend    = "storage.backend"
	KeyStoragePath       = "storage.path"
	KeyAIModel           = "ai.model"
	KeyAITimeoutSeconds  = "ai.timeoutSeconds"
	KeyMapsEnabled       = "maps.enabled"
	KeyPhotoMaxDimension = "photo.maxDimension"
	KeyReportDir         = "report.dir"
	KeyLogLevel          = "log.level"
)

// OptionRegistry returns the known config options in display order.
func OptionRegistry() []OptionMetadata {
	return []OptionMetadata{
		{KeyPath: KeyStorageBackend, Type: OptionTypeEnum, Default: DefaultStorageBackend, Choices: []string{StorageBackendFile, StorageBackendSQLite}, Description: "Where trips are stored"},
		{KeyPath: KeyStoragePath, Type: OptionTypeString, Default: "", Description: "Storage file or database path (empty: inside .cabinlog)"},
		{KeyPath: KeyAIModel, Type: OptionTypeString, Default: DefaultAIModel, Description: "Gemini model used for trip summaries"},
		{KeyPath: KeyAITimeoutSeconds, Type: OptionTypeInt, Default: "60", Bounds: &IntBounds{Min: MinAITimeoutSeconds, Max: MaxAITimeoutSeconds}, Description: "Summary request timeout in seconds"},
		{KeyPath: KeyMapsEnabled, Type: OptionTypeBool, Default: "true", Description: "Include map links when MAPS_API_KEY is set"},
		{KeyPath: KeyPhotoMaxDimension, Type: OptionTypeInt, Default: "0", Bounds: &IntBounds{Min: MinPhotoMaxDim, Max: MaxPhotoMaxDim}, Description: "Downscale attached photos to this many pixels (0: keep)"},
		{KeyPath: KeyReportDir, Type: OptionTypeString, Default: DefaultReportDir, Description: "Directory for generated reports"},
		{KeyPath: KeyLogLevel, Type: OptionTypeEnum, Default: DefaultLogLevel, Choices: []string{"debug", "info", "warn", "error"}, Description: "Log level"},
	}
}

func LookupOption(key string) (OptionMetadata, bool) {
	for _, opt := range OptionRegistry() {
		if opt.KeyPath == key {
			return opt, true
		}
	}
	return OptionMetadata{}, false
}

// ValueOf renders the resolved value of key as it would be written with SetValue.
func ValueOf(cfg ResolvedConfig, key string) (string, bool) {
	switch key {
	case KeyStorageBackend:
		return cfg.Storage.Backend, true
	case KeyStoragePath:
		return cfg.Storage.Path, true
	case KeyAIModel:
		return cfg.AI.Model, true
	case KeyAITimeoutSeconds:
		return strconv.Itoa(cfg.AI.TimeoutSeconds), true
	case KeyMapsEnabled:
		return strconv.FormatBool(cfg.Maps.Enabled), true
	case KeyPhotoMaxDimension:
		return strconv.Itoa(cfg.Photo.MaxDimension), true
	case KeyReportDir:
		return cfg.Report.Dir, true
	case KeyLogLevel:
		return cfg.Log.Level, true
	}
	return "", false
}
