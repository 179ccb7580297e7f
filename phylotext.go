// Package phylotext checks whether unsupervised clustering of encyclopedia
// articles recovers the clade structure of a taxonomy. It extracts family
// names per clade from a taxonomy browser dump, gathers one article per
// family, embeds and clusters the resulting corpus, and cross-tabulates the
// clusters against the known clades.
//
// This package contains domain types, pure domain logic and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, gemini/).
package phylotext
