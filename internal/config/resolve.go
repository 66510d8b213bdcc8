package config

import (
	"strings"
)

// ResolveConfig merges project/global configs with built-in defaults.
// Precedence per key: project > global > defaults; ints are clamped to their bounds and
// unknown enum values fall through to the next layer.
func ResolveConfig(project RawConfig, global RawConfig) ResolvedConfig {
	defaults := DefaultResolvedConfig()

	backend := resolveEnum(
		pick(project.Storage, func(s RawStorage) *string { return s.Backend }),
		pick(global.Storage, func(s RawStorage) *string { return s.Backend }),
		defaults.Storage.Backend,
		StorageBackendFile, StorageBackendSQLite,
	)
	storagePath := resolveString(
		pick(project.Storage, func(s RawStorage) *string { return s.Path }),
		pick(global.Storage, func(s RawStorage) *string { return s.Path }),
		defaults.Storage.Path,
	)
	model := resolveString(
		pick(project.AI, func(a RawAI) *string { return a.Model }),
		pick(global.AI, func(a RawAI) *string { return a.Model }),
		defaults.AI.Model,
	)
	timeout := resolveIntWithBounds(
		pick(project.AI, func(a RawAI) *int { return a.TimeoutSeconds }),
		pick(global.AI, func(a RawAI) *int { return a.TimeoutSeconds }),
		defaults.AI.TimeoutSeconds,
		MinAITimeoutSeconds,
		MaxAITimeoutSeconds,
	)
	mapsEnabled := resolveBool(
		pick(project.Maps, func(m RawMaps) *bool { return m.Enabled }),
		pick(global.Maps, func(m RawMaps) *bool { return m.Enabled }),
		defaults.Maps.Enabled,
	)
	maxDim := resolveIntWithBounds(
		pick(project.Photo, func(p RawPhoto) *int { return p.MaxDimension }),
		pick(global.Photo, func(p RawPhoto) *int { return p.MaxDimension }),
		defaults.Photo.MaxDimension,
		MinPhotoMaxDim,
		MaxPhotoMaxDim,
	)
	reportDir := resolveString(
		pick(project.Report, func(r RawReport) *string { return r.Dir }),
		pick(global.Report, func(r RawReport) *string { return r.Dir }),
		defaults.Report.Dir,
	)
	logLevel := resolveEnum(
		pick(project.Log, func(l RawLog) *string { return l.Level }),
		pick(global.Log, func(l RawLog) *string { return l.Level }),
		defaults.Log.Level,
		"debug", "info", "warn", "error",
	)

	return ResolvedConfig{
		SchemaVersion: SchemaVersion,
		Storage:       ResolvedStorage{Backend: backend, Path: storagePath},
		AI:            ResolvedAI{Model: model, TimeoutSeconds: timeout},
		Maps:          ResolvedMaps{Enabled: mapsEnabled},
		Photo:         ResolvedPhoto{MaxDimension: maxDim},
		Report:        ResolvedReport{Dir: reportDir},
		Log:           ResolvedLog{Level: logLevel},
	}
}

func pick[S any, V any](section *S, get func(S) *V) *V {
	if section == nil {
		return nil
	}
	return get(*section)
}

func resolveEnum(projectVal *string, globalVal *string, defaultVal string, allowed ...string) string {
	for _, v := range []*string{projectVal, globalVal} {
		if norm, ok := normalizeEnum(v, allowed); ok {
			return norm
		}
	}
	return defaultVal
}

func normalizeEnum(value *string, allowed []string) (string, bool) {
	if value == nil {
		return "", false
	}
	v := strings.ToLower(strings.TrimSpace(*value))
	for _, a := range allowed {
		if v == a {
			return v, true
		}
	}
	return "", false
}

func resolveString(projectVal *string, globalVal *string, defaultVal string) string {
	if value := normalizeString(projectVal); value != "" {
		return value
	}
	if value := normalizeString(globalVal); value != "" {
		return value
	}
	return defaultVal
}

func resolveBool(projectVal *bool, globalVal *bool, defaultVal bool) bool {
	if projectVal != nil {
		return *projectVal
	}
	if globalVal != nil {
		return *globalVal
	}
	return defaultVal
}

func resolveIntWithBounds(projectVal *int, globalVal *int, defaultVal int, min int, max int) int {
	if projectVal != nil {
		return clampInt(*projectVal, min, max)
	}
	if globalVal != nil {
		return clampInt(*globalVal, min, max)
	}
	return clampInt(defaultVal, min, max)
}

func clampInt(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func normalizeString(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}
