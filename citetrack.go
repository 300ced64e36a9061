// Package citetrack tracks maritime-infraction citations. It scrapes a
// listing site for infraction report PDFs, extracts the citation URLs
// embedded in those reports, bulk-fetches the text behind each URL, and
// cross-references the resulting corpus against reference tables of named
// entities (topics, vessels, plants, owners), tagging each entity with
// the URLs where its name appears.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., pdf/,
// sqlite/, trafilatura/).
package citetrack
