package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           tradebridge API
// @version         0.1.0
// @description     Webhook signal execution against Binance.US with a durable trade ledger.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
