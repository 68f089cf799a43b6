// Package config loads struct-tagged configuration from the environment,
// with a one-shot .env file load for development. Twelve-factor style: the
// same binary is configured entirely through FORUM_* variables in
// production and a checked-out .env locally.
package config
