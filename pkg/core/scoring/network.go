package scoring

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Network shape: 5 inputs -> 10 relu -> 8 relu -> 1 sigmoid
const (
	inputWidth   = 5
	hiddenWidth1 = 10
	hiddenWidth2 = 8
	outputWidth  = 1
)

// Adam hyperparameters
const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-7
)

type activation string

const (
	activationReLU    activation = "relu"
	activationSigmoid activation = "sigmoid"
)

func (a activation) apply(z float64) float64 {
	switch a {
	case activationReLU:
		return math.Max(0, z)
	case activationSigmoid:
		return 1 / (1 + math.Exp(-z))
	default:
		return z
	}
}

// derivative is expressed in terms of the activated output y
func (a activation) derivative(y float64) float64 {
	switch a {
	case activationReLU:
		if y > 0 {
			return 1
		}
		return 0
	case activationSigmoid:
		return y * (1 - y)
	default:
		return 1
	}
}

func (a activation) valid() bool {
	return a == activationReLU || a == activationSigmoid
}

// denseLayer is a fully connected layer; weights are indexed [out][in]
type denseLayer struct {
	weights    [][]float64
	biases     []float64
	activation activation
}

func (l *denseLayer) inputs() int  { return len(l.weights[0]) }
func (l *denseLayer) outputs() int { return len(l.weights) }

func (l *denseLayer) forward(x []float64) []float64 {
	out := make([]float64, len(l.weights))
	for o, row := range l.weights {
		z := l.biases[o]
		for i, w := range row {
			z += w * x[i]
		}
		out[o] = l.activation.apply(z)
	}
	return out
}

// network is a small multilayer perceptron regressing a single value in [0,1]
type network struct {
	layers []*denseLayer
}

// newNetwork builds the default shape with Glorot-uniform weights and zero biases
func newNetwork(rng *rand.Rand) *network {
	shape := []struct {
		in, out int
		act     activation
	}{
		{inputWidth, hiddenWidth1, activationReLU},
		{hiddenWidth1, hiddenWidth2, activationReLU},
		{hiddenWidth2, outputWidth, activationSigmoid},
	}

	n := &network{}
	for _, s := range shape {
		limit := math.Sqrt(6 / float64(s.in+s.out))
		layer := &denseLayer{
			weights:    make([][]float64, s.out),
			biases:     make([]float64, s.out),
			activation: s.act,
		}
		for o := range layer.weights {
			layer.weights[o] = make([]float64, s.in)
			for i := range layer.weights[o] {
				layer.weights[o][i] = (rng.Float64()*2 - 1) * limit
			}
		}
		n.layers = append(n.layers, layer)
	}
	return n
}

var errNonFiniteOutput = errors.New("network produced a non-finite output")

// predict runs a single feature vector through the network
func (n *network) predict(features []float64) (float64, error) {
	if n == nil || len(n.layers) == 0 {
		return 0, ErrNotTrained
	}
	if len(features) != n.layers[0].inputs() {
		return 0, fmt.Errorf("expected %d features, got %d", n.layers[0].inputs(), len(features))
	}

	x := features
	for _, layer := range n.layers {
		x = layer.forward(x)
	}

	y := x[0]
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, errNonFiniteOutput
	}
	if y < 0 || y > 1 {
		return 0, fmt.Errorf("network output %v outside [0,1]", y)
	}
	return y, nil
}

// gradients mirrors the network's parameter shapes
type gradients struct {
	weights [][][]float64
	biases  [][]float64
}

func (n *network) zeroGradients() *gradients {
	g := &gradients{
		weights: make([][][]float64, len(n.layers)),
		biases:  make([][]float64, len(n.layers)),
	}
	for l, layer := range n.layers {
		g.weights[l] = make([][]float64, layer.outputs())
		for o := range g.weights[l] {
			g.weights[l][o] = make([]float64, layer.inputs())
		}
		g.biases[l] = make([]float64, layer.outputs())
	}
	return g
}

// backprop accumulates the gradient of the mean squared error for one sample
// (scaled by 1/batchSize) into g and returns the sample's squared error
func (n *network) backprop(x []float64, target float64, batchSize int, g *gradients) float64 {
	activations := make([][]float64, len(n.layers)+1)
	activations[0] = x
	for l, layer := range n.layers {
		activations[l+1] = layer.forward(activations[l])
	}

	y := activations[len(n.layers)][0]
	diff := y - target

	// dLoss/dOutput for mean((y - t)^2)
	delta := []float64{2 * diff / float64(batchSize)}

	for l := len(n.layers) - 1; l >= 0; l-- {
		layer := n.layers[l]
		out := activations[l+1]
		in := activations[l]

		for o := range delta {
			delta[o] *= layer.activation.derivative(out[o])
		}

		for o, d := range delta {
			g.biases[l][o] += d
			for i := range in {
				g.weights[l][o][i] += d * in[i]
			}
		}

		if l == 0 {
			break
		}

		prev := make([]float64, layer.inputs())
		for o, d := range delta {
			for i, w := range layer.weights[o] {
				prev[i] += w * d
			}
		}
		delta = prev
	}

	return diff * diff
}

// adam holds first and second moment estimates for every parameter
type adam struct {
	learningRate float64
	step         int
	m, v         *gradients
}

func newAdam(n *network, learningRate float64) *adam {
	return &adam{
		learningRate: learningRate,
		m:            n.zeroGradients(),
		v:            n.zeroGradients(),
	}
}

func (a *adam) apply(n *network, g *gradients) {
	a.step++
	correction1 := 1 - math.Pow(adamBeta1, float64(a.step))
	correction2 := 1 - math.Pow(adamBeta2, float64(a.step))

	update := func(param *float64, grad float64, m, v *float64) {
		*m = adamBeta1*(*m) + (1-adamBeta1)*grad
		*v = adamBeta2*(*v) + (1-adamBeta2)*grad*grad
		mHat := *m / correction1
		vHat := *v / correction2
		*param -= a.learningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
	}

	for l, layer := range n.layers {
		for o := range layer.weights {
			for i := range layer.weights[o] {
				update(&layer.weights[o][i], g.weights[l][o][i], &a.m.weights[l][o][i], &a.v.weights[l][o][i])
			}
			update(&layer.biases[o], g.biases[l][o], &a.m.biases[l][o], &a.v.biases[l][o])
		}
	}
}
