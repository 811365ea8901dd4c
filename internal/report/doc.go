// Package report renders repository inspections for people and programs.
//
// Inspections become documents with stable field names; JSON and YAML
// encode those documents directly while the text format lays them out as a
// table with colored status labels.
package report
