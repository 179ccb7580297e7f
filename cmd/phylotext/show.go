package main

import "github.com/fwojciec/phylotext/yaml"

// Run executes the config command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	return yaml.EncodeConfig(deps.Stdout, deps.Config)
}
