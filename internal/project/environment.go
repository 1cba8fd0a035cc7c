package project

import (
	"os"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envVarPrefix is the process-environment prefix for scenario variables:
// UNITSCOPE_VAR_BUILD_MODE becomes the scenario variable "build_mode".
const envVarPrefix = "UNITSCOPE_VAR_"

// Environment carries the scenario variables and root directory a project
// manifest was resolved against. It is released together with its Model;
// after Close the variable table is cleared.
type Environment struct {
	RootDir string
	vars    map[string]string
}

// loadEnvironment collects scenario variables from the process environment.
func loadEnvironment(rootDir string) (*Environment, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envVarPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envVarPrefix))
	}), nil); err != nil {
		return nil, err
	}

	vars := make(map[string]string)
	for key := range k.All() {
		vars[key] = k.String(key)
	}
	return &Environment{RootDir: rootDir, vars: vars}, nil
}

// Var returns the scenario variable value for name.
// Falls back to the plain process environment when unset.
func (e *Environment) Var(name string) string {
	if v, ok := e.vars[strings.ToLower(name)]; ok {
		return v
	}
	return os.Getenv(name)
}

// Vars returns a copy of the scenario variable table.
func (e *Environment) Vars() map[string]string {
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

// Close releases the environment. Safe to call more than once.
func (e *Environment) Close() error {
	e.vars = nil
	return nil
}
