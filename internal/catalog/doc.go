// Package catalog models the ordered list of upstream repositories that make up a workspace.
//
// Entries are "organization/repository" references. The catalog is supplied as data,
// from configuration or from a YAML file, and its order is the processing order.
package catalog
