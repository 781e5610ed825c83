// Package pbexport assembles a generated business playbook into
// downloadable documents: single PDFs for any section, offer, or asset,
// and a complete ZIP package with an offline navigation index.
//
// The pipeline has three collaborators, each behind a narrow interface:
// a Generator that fills in missing asset content on demand, a
// DocumentConverter that turns one export unit into paginated PDF bytes,
// and an Archive that collects named blobs into one downloadable
// package. An Exporter drives them with observable progress and a strict
// one-export-at-a-time guard, because the converter owns a single
// staging area.
package pbexport
