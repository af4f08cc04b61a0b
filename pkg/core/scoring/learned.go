package scoring

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/metrics"
)

var (
	// ErrNotTrained is returned when a learned scorer has no network
	ErrNotTrained = errors.New("learned scorer has no trained network")

	// ErrInvalidArtifact is returned when a persisted model cannot be used
	ErrInvalidArtifact = errors.New("invalid model artifact")
)

const artifactVersion = 1

// TrainConfig controls in-process training of the learned scorer
type TrainConfig struct {
	Epochs       int
	BatchSize    int
	LearningRate float64
	Seed         int64 // seeds weight initialisation and shuffling
}

// DefaultTrainConfig returns 50 epochs of mini-batches of 32 with Adam at 0.001
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:       50,
		BatchSize:    32,
		LearningRate: 0.001,
		Seed:         42,
	}
}

// Learned scores pairs with a feed-forward regression network. Any failure to
// produce a prediction falls back to the Heuristic score for that call.
type Learned struct {
	net        *network
	normalizer *Normalizer
	logger     *zap.Logger
	loss       float64
}

func (l *Learned) Kind() Kind {
	return KindLearned
}

// Score predicts a success score in [0,100] for the pair
func (l *Learned) Score(employee model.Employee, task model.Task) int {
	metrics.RecordScorerInvocation(string(KindLearned))

	if l == nil || l.net == nil {
		return fallbackScore(nil, employee, task, "uninitialized", ErrNotTrained)
	}

	normalizer := l.normalizer
	if normalizer == nil {
		normalizer = defaultNormalizer
	}

	features, err := normalizer.pairFeatures(employee, task)
	if err != nil {
		return fallbackScore(l.logger, employee, task, "features", err)
	}

	y, err := l.net.predict(features)
	if err != nil {
		return fallbackScore(l.logger, employee, task, "inference", err)
	}

	return int(math.Round(y * 100))
}

// Loss returns the mean squared error of the final training epoch. It is zero
// for scorers loaded from an artifact.
func (l *Learned) Loss() float64 {
	return l.loss
}

func fallbackScore(logger *zap.Logger, employee model.Employee, task model.Task, reason string, err error) int {
	metrics.RecordScorerFallback(reason)
	if logger != nil {
		logger.Debug("Learned scorer failed, using heuristic",
			zap.String("reason", reason),
			zap.String("employee_id", employee.ID),
			zap.String("task_id", task.ID),
			zap.Error(err))
	}
	return Heuristic{}.Score(employee, task)
}

// TrainLearned fits a fresh network to the samples using mean squared error
// against SuccessScore/100
func TrainLearned(samples []TrainingSample, cfg TrainConfig, logger *zap.Logger) (*Learned, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples provided")
	}
	if cfg.Epochs < 1 {
		return nil, fmt.Errorf("epochs must be positive, got %d", cfg.Epochs)
	}
	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.LearningRate <= 0 {
		return nil, fmt.Errorf("learning rate must be positive, got %g", cfg.LearningRate)
	}

	normalizer := DefaultNormalizer()
	inputs := make([][]float64, len(samples))
	targets := make([]float64, len(samples))
	for i, sample := range samples {
		features, err := normalizer.sampleFeatures(sample)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize sample %d: %w", i, err)
		}
		inputs[i] = features
		targets[i] = sample.SuccessScore / 100
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible training
	net := newNetwork(rng)
	optimizer := newAdam(net, cfg.LearningRate)

	logger.Debug("Training learned scorer",
		zap.Int("samples", len(samples)),
		zap.Int("epochs", cfg.Epochs),
		zap.Int("batch_size", cfg.BatchSize))

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	var loss float64
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var squaredError float64
		for start := 0; start < len(order); start += cfg.BatchSize {
			end := min(start+cfg.BatchSize, len(order))
			batch := order[start:end]

			grads := net.zeroGradients()
			for _, idx := range batch {
				squaredError += net.backprop(inputs[idx], targets[idx], len(batch), grads)
			}
			optimizer.apply(net, grads)
		}

		loss = squaredError / float64(len(order))
		logger.Debug("Training epoch complete", zap.Int("epoch", epoch), zap.Float64("loss", loss))
	}

	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return nil, fmt.Errorf("training diverged: loss is %v", loss)
	}
	metrics.SetTrainingLoss(loss)

	return &Learned{
		net:        net,
		normalizer: normalizer,
		logger:     logger,
		loss:       loss,
	}, nil
}

// Artifact is the persisted form of a learned scorer's network
type Artifact struct {
	Version int             `yaml:"version"`
	Layers  []LayerArtifact `yaml:"layers"`
}

// LayerArtifact holds one dense layer; weights are indexed [output][input]
type LayerArtifact struct {
	Activation string      `yaml:"activation"`
	Weights    [][]float64 `yaml:"weights"`
	Biases     []float64   `yaml:"biases"`
}

// Artifact exports the network weights
func (l *Learned) Artifact() Artifact {
	artifact := Artifact{Version: artifactVersion}
	for _, layer := range l.net.layers {
		weights := make([][]float64, len(layer.weights))
		for o, row := range layer.weights {
			weights[o] = append([]float64(nil), row...)
		}
		artifact.Layers = append(artifact.Layers, LayerArtifact{
			Activation: string(layer.activation),
			Weights:    weights,
			Biases:     append([]float64(nil), layer.biases...),
		})
	}
	return artifact
}

// MarshalArtifact encodes the network as YAML
func (l *Learned) MarshalArtifact() ([]byte, error) {
	if l == nil || l.net == nil {
		return nil, ErrNotTrained
	}
	data, err := yaml.Marshal(l.Artifact())
	if err != nil {
		return nil, fmt.Errorf("failed to encode model artifact: %w", err)
	}
	return data, nil
}

// SaveLearned writes the scorer's artifact to path
func SaveLearned(l *Learned, path string) error {
	data, err := l.MarshalArtifact()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// UnmarshalLearned decodes and validates a YAML artifact
func UnmarshalLearned(data []byte, logger *zap.Logger) (*Learned, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var artifact Artifact
	if err := yaml.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	net, err := networkFromArtifact(artifact)
	if err != nil {
		return nil, err
	}

	return &Learned{
		net:        net,
		normalizer: DefaultNormalizer(),
		logger:     logger,
	}, nil
}

// LoadLearned reads a previously saved artifact from path
func LoadLearned(path string, logger *zap.Logger) (*Learned, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	return UnmarshalLearned(data, logger)
}

func networkFromArtifact(artifact Artifact) (*network, error) {
	if artifact.Version != artifactVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidArtifact, artifact.Version)
	}
	if len(artifact.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidArtifact)
	}

	net := &network{}
	expectedInputs := inputWidth
	for i, la := range artifact.Layers {
		act := activation(la.Activation)
		if !act.valid() {
			return nil, fmt.Errorf("%w: layer %d has unknown activation %q", ErrInvalidArtifact, i, la.Activation)
		}
		if len(la.Weights) == 0 || len(la.Biases) != len(la.Weights) {
			return nil, fmt.Errorf("%w: layer %d has %d weight rows and %d biases", ErrInvalidArtifact, i, len(la.Weights), len(la.Biases))
		}

		layer := &denseLayer{
			weights:    make([][]float64, len(la.Weights)),
			biases:     make([]float64, len(la.Biases)),
			activation: act,
		}
		for o, row := range la.Weights {
			if len(row) != expectedInputs {
				return nil, fmt.Errorf("%w: layer %d row %d has %d inputs, expected %d", ErrInvalidArtifact, i, o, len(row), expectedInputs)
			}
			if !allFinite(row) {
				return nil, fmt.Errorf("%w: layer %d has non-finite weights", ErrInvalidArtifact, i)
			}
			layer.weights[o] = append([]float64(nil), row...)
		}
		if !allFinite(la.Biases) {
			return nil, fmt.Errorf("%w: layer %d has non-finite biases", ErrInvalidArtifact, i)
		}
		copy(layer.biases, la.Biases)

		net.layers = append(net.layers, layer)
		expectedInputs = len(la.Weights)
	}

	if last := net.layers[len(net.layers)-1]; last.activation != activationSigmoid {
		return nil, fmt.Errorf("%w: final layer activation must be %s, got %s", ErrInvalidArtifact, activationSigmoid, last.activation)
	}

	if expectedInputs != outputWidth {
		return nil, fmt.Errorf("%w: final layer has %d outputs, expected %d", ErrInvalidArtifact, expectedInputs, outputWidth)
	}

	return net, nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
