// Package main provides the entry point for the AJAdmin backend.
// It runs a REST API on the Fiber framework that lets staff manage the
// catalogue, customers, orders, blog content and role based permissions
// of a shop, and serves a small public storefront and payment API.
// Data is persisted with gorm on MySQL, PostgreSQL or SQLite.
package main
