package config

const (
	defaultStorageBackend = "memory"

	defaultAPIListen = ":8080"

	defaultGeneratorProvider = "ollama"
	defaultGeneratorTarget   = "http://localhost:11434"
	defaultVertexLocation    = "us-central1"

	// presetOllamaModel appears only in the ollama preset. The running
	// default for generator.model is empty so each provider adapter can
	// apply its own model default.
	presetOllamaModel = "llama3.2"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Storage: StorageConfig{
			Backend: defaultStorageBackend,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Generator: GeneratorConfig{
			Provider: defaultGeneratorProvider,
			Target:   defaultGeneratorTarget,
			Location: defaultVertexLocation,
		},
	}
}
