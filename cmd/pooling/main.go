package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/FlavioCFOliveira/maxpool/internal/layer"
	"github.com/FlavioCFOliveira/maxpool/internal/loss"
	"github.com/FlavioCFOliveira/maxpool/internal/net"
	"github.com/FlavioCFOliveira/maxpool/internal/opt"
	"gonum.org/v1/gonum/mat"
)

// Pooling calibration example
// Trains the per-feature-map scale and bias of a max pooling layer to
// reproduce a known affine calibration on synthetic grids.
func main() {
	inRows := flag.Int("rows", 8, "Input grid rows per feature map")
	inCols := flag.Int("cols", 8, "Input grid cols per feature map")
	poolRows := flag.Int("pool-rows", 2, "Pooling window rows")
	poolCols := flag.Int("pool-cols", 2, "Pooling window cols")
	featMaps := flag.Int("featmaps", 3, "Number of feature maps")
	batches := flag.Int("batches", 8, "Number of batches")
	batchSize := flag.Int("batch", 32, "Samples per batch")
	epochs := flag.Int("epochs", 100, "Number of training epochs")
	lr := flag.Float64("lr", layer.DefaultLearningRate, "Initial learning rate")
	decayEvery := flag.Int("decay-every", 50, "Epochs between learning rate decays")
	gamma := flag.Float64("gamma", 0.5, "Learning rate decay factor")
	momentum := flag.Float64("momentum", layer.DefaultMomentum, "Momentum coefficient")
	targetScale := flag.Float64("target-scale", 2.0, "Calibration scale to learn")
	targetBias := flag.Float64("target-bias", 0.5, "Calibration bias to learn")
	seed := flag.Int64("seed", 42, "Random seed")
	history := flag.String("history", "", "Write per-epoch loss to this CSV file")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	cfg := layer.PoolingConfig{
		InputSize: layer.Size{Rows: *inRows, Cols: *inCols},
		PoolSize:  layer.Size{Rows: *poolRows, Cols: *poolCols},
		NFeatMap:  *featMaps,
	}

	fmt.Println("=== Max Pooling Calibration ===")

	pool, err := layer.NewMaxPooling(rng, cfg)
	if err != nil {
		log.Fatalf("Failed to create pooling layer: %v", err)
	}
	reference, err := layer.NewMaxPooling(rng, cfg)
	if err != nil {
		log.Fatalf("Failed to create reference layer: %v", err)
	}

	xs := make([]*mat.Dense, *batches)
	ys := make([]*mat.Dense, *batches)
	for b := range xs {
		xs[b] = randomBatch(rng, pool.InSize(), *batchSize)
		ys[b], err = calibratedTargets(reference, xs[b], *targetScale, *targetBias)
		if err != nil {
			log.Fatalf("Failed to build targets: %v", err)
		}
	}

	network, err := net.New(pool)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}
	sched := opt.NewStepLR(*lr, *decayEvery, *gamma)
	network.Compile(loss.MSE{}, sched, *momentum)
	network.Summary(os.Stdout)

	callbacks := []net.Callback{
		net.NewSchedulerCallback(sched),
		net.Logger{Interval: max(*epochs/10, 1)},
	}
	var csvLogger *net.CSVLogger
	if *history != "" {
		csvLogger = net.NewCSVLogger(*history, false)
		callbacks = append(callbacks, csvLogger)
	}

	if err := network.Fit(xs, ys, *epochs, callbacks...); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	if csvLogger != nil && csvLogger.Err() != nil {
		log.Printf("History not written: %v", csvLogger.Err())
	}

	fmt.Printf("\nTarget: scale=%.4f bias=%.4f\n", *targetScale, *targetBias)
	scale, bias := pool.Scale(), pool.Bias()
	for f := range scale {
		fmt.Printf("  featmap %d: scale=%.4f bias=%.4f\n", f, scale[f], bias[f])
	}
}

// randomBatch returns an n x samples matrix of uniform values.
func randomBatch(rng *rand.Rand, n, samples int) *mat.Dense {
	data := make([]float64, n*samples)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(n, samples, data)
}

// calibratedTargets pools x with an identity-calibrated layer and applies
// targetScale and targetBias to every window maximum.
func calibratedTargets(reference *layer.MaxPooling, x *mat.Dense, targetScale, targetBias float64) (*mat.Dense, error) {
	maxima, err := reference.Forward(x)
	if err != nil {
		return nil, err
	}
	var y mat.Dense
	y.Apply(func(_, _ int, v float64) float64 {
		return targetScale*v + targetBias
	}, maxima)
	return &y, nil
}
