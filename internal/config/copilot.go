package config

import (
	"fmt"
	"os"
)

// ServiceName is the Copilot "<app>-<env>-<svc>" name, or def when the
// service is not running under Copilot.
func ServiceName(def string) string {
	app, ok := os.LookupEnv("COPILOT_APPLICATION_NAME")
	if !ok {
		return def
	}

	env, ok := os.LookupEnv("COPILOT_ENVIRONMENT_NAME")
	if !ok {
		return def
	}

	svc, ok := os.LookupEnv("COPILOT_SERVICE_NAME")
	if !ok {
		return def
	}

	return fmt.Sprintf("%s-%s-%s", app, env, svc)
}

// FunctionName is the Lambda function name, or def outside Lambda.
func FunctionName(def string) string {
	if name, ok := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); ok && name != "" {
		return name
	}
	return def
}
