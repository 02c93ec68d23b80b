// Package models defines the domain types shared across moodmix packages.
//
//   - [Emotion] : closed vocabulary of affect labels (happy, sad, angry, neutral)
//   - [User] : credential record persisted by the repositories package
//   - [Track] : normalized track metadata returned to browsers
//   - [Recommendation] : an emotion with its tracks, the JSON body of the data endpoints
//
// Tracks and recommendations are transient. They are rebuilt on every request and never persisted.
package models
