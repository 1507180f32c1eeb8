package config

// Dotted paths of the YAML fields, used in validation errors.
const (
	delimiter = "."

	KeyMode        = "mode"
	KeyWorkers     = "workers"
	KeyLogic       = "logic"
	KeyUnion       = "union"
	KeyDefuzz      = "defuzz"
	KeyImplication = "implication"
	KeyCycleSink   = "cycle_sink"

	KeyLogPrefix      = "log"
	KeyLogLevel       = KeyLogPrefix + delimiter + "level"
	KeyLogDevelopment = KeyLogPrefix + delimiter + "development"

	KeyMetricsPrefix    = "metrics"
	KeyMetricsNamespace = KeyMetricsPrefix + delimiter + "namespace"
)

// Operator names accepted in the YAML file.
const (
	LogicZadeh       = "zadeh"
	LogicProduct     = "product"
	LogicLukasiewicz = "lukasiewicz"

	UnionMax           = "max"
	UnionProbabilistic = "probabilistic"

	DefuzzCenterOfMass  = "center_of_mass"
	DefuzzMeanOfMaximum = "mean_of_maximum"

	ImplicationFilter = "filter"
	ImplicationClip   = "clip"
)
