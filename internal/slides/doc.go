// Package slides reads presentations from Google Slides and Google Drive.
//
// The Client loads a presentation's slide list for the navigation cursor,
// lists the presentations in the user's Drive and builds PNG thumbnail
// links for each slide. Google API errors are translated into the sentinel
// errors of this package; Message turns them into text suitable for API
// responses.
package slides
