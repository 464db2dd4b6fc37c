/*
Package config loads dispatcher settings from YAML or JSON.

# Overview

A Config describes how a wire dispatcher should be constructed: its name
for logs and spans, its log level, whether OpenTelemetry metrics and
tracing are enabled, and a set of skip rules applied before any handler
is registered.

# File Format

	name: orders
	log_level: debug
	metrics: true
	tracing: false
	skip:
	  "order.*": [audit]
	  order.cancelled: [mailer, sms]

# File Loading

	cfg, err := config.FromFile("wire.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

Unknown keys are ignored. Missing keys keep the values from Default().
*/
package config
