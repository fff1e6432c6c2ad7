package model

// ClassMetrics holds per-class evaluation metrics from a held-out partition.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// TrainingReport summarizes a completed training run.
type TrainingReport struct {
	TrainSize  int
	TestSize   int
	Positives  int
	Negatives  int
	Normal     ClassMetrics
	Suspicious ClassMetrics
	ROCAUC     float64
}
