package main

//go:generate swag init -g cmd/predictord/main.go -o docs

// @title           Falcon 9 Landing Predictor API
// @version         0.1.0
// @description     First-stage landing outcome predictions from a fitted random-forest artifact.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
