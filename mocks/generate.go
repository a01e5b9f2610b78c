package mocks

//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/backtest/engine Engine
