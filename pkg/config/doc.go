// Package config loads translator settings from the environment.
package config
