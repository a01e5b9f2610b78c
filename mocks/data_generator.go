package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// DataGenerator generates realistic market data for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of data points to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          10000,
		InitialPrice:   100.0,
		Volatility:     0.002, // 0.2% per bar
		Trend:          0.0,   // neutral
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// GenerateSeries creates an ascending series following a geometric Brownian motion.
// Every candle satisfies the importer's admission rules.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig) types.Series {
	series := make(types.Series, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a standard normal draw
		u1 := 1.0 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		closePrice := open * (1 + priceChange + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, closePrice) + highExtension
		low := math.Min(open, closePrice) - lowExtension
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		series[i] = types.Candle{
			Time:   currentTime.Unix(),
			Open:   positive(roundToDecimals(open, 4)),
			High:   positive(roundToDecimals(high, 4)),
			Low:    positive(roundToDecimals(low, 4)),
			Close:  positive(roundToDecimals(closePrice, 4)),
			Volume: roundToDecimals(volume, 2),
		}

		currentPrice = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return series
}

// Generate10K is a convenience function to generate 10,000 candles
// with default settings for benchmarking.
func Generate10K() types.Series {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 10000

	return gen.GenerateSeries(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}

// positive keeps rounded prices above zero.
func positive(price float64) float64 {
	if price <= 0 {
		return 0.0001
	}

	return price
}
