package spec

type EvalSpec struct {
	Jobs    []Job             `yaml:"jobs"`
	Targets map[string]Target `yaml:"targets"`
	Judge   JudgeConfig       `yaml:"judge"`
	Metrics MetricsConfig     `yaml:"metrics"`
	Runs    RunsConfig        `yaml:"runs"`
}

type Job struct {
	Name    string   `yaml:"name"`
	Suite   string   `yaml:"suite"`
	Targets []string `yaml:"targets"`
	Metrics []string `yaml:"metrics,omitempty"`
}

type Target struct {
	Type           string `yaml:"type"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

type JudgeConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model,omitempty"`
	OnError     string `yaml:"on_error,omitempty"`
	MaxAttempts int    `yaml:"max_attempts,omitempty"`
}

type MetricsConfig struct {
	Thresholds map[string]float64 `yaml:"thresholds,omitempty"`
}

type RunsConfig struct {
	Warmup     int `yaml:"warmup"`
	Iterations int `yaml:"iterations"`
}

const (
	OnErrorSkip = "skip"
	OnErrorFail = "fail"
)
