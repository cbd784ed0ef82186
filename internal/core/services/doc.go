// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The recommendation engine lives here: the catalog index, the content
// matcher, the collaborative recommender and the feedback store. Every
// component shares one immutable Catalog.
package services
