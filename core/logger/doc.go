// Package logger builds the zap logger shared by the HTTP server and the CLI.
//
// Level and encoding come from Config. Two helpers attach correlation
// fields: WithRayID copies the request id stored by the rayid middleware,
// and WithScene tags entries with the scene and object being reconciled.
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	logger.WithScene(log, "hull", "Hull").Info("Bake applied")
package logger
