// Package logger configures the global zerolog logger: console and rolling
// file output split by level, a prometheus hook counting log statements and
// optional shipping to datadog.
package logger
