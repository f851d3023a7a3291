package spec

// JobSpec describes one end-to-end evaluation: optional split export,
// optional rule learning and application, then metric computation.
type JobSpec struct {
	Name       string      `yaml:"name"`
	WorkingDir string      `yaml:"working_dir"`
	Output     string      `yaml:"output"`
	Splits     SplitsSpec  `yaml:"splits"`
	Tool       ToolSpec    `yaml:"tool"`
	Evaluate   EvalSpec    `yaml:"evaluate"`
	Results    ResultsSpec `yaml:"results"`
}

type SplitsSpec struct {
	Train string `yaml:"train,omitempty"`
	Test  string `yaml:"test,omitempty"`
	Valid string `yaml:"valid,omitempty"`
}

func (s SplitsSpec) Empty() bool {
	return s.Train == "" && s.Test == "" && s.Valid == ""
}

type ToolSpec struct {
	Dir         string `yaml:"dir"`
	LearnConfig string `yaml:"learn_config,omitempty"`
	ApplyConfig string `yaml:"apply_config,omitempty"`
	MaxHeap     string `yaml:"max_heap,omitempty"`
	Timeout     string `yaml:"timeout,omitempty"`
}

type EvalSpec struct {
	Config  string   `yaml:"config"`
	Metrics []string `yaml:"metrics"`
	KValues []int    `yaml:"k_values"`
}

type ResultsSpec struct {
	Files []string `yaml:"files"`
	Table bool     `yaml:"table"`
	Store bool     `yaml:"store"`
}
