// Package tmdb provides a client for the TMDB (The Movie Database) v3 API.
//
// Only the read endpoints needed for browsing are implemented: one list per
// Category plus free-text search. Every list call returns the first page of
// results.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		logger,
//		tmdb.WithAccessToken(os.Getenv("TMDB_TOKEN")),
//		tmdb.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.Category(ctx, tmdb.Trending)
//
// # Error Handling
//
// Non-success statuses are returned as *APIError and undecodable payloads as
// *ParseError. Classify folds any call result into an Outcome and, for
// failures, a *Failure carrying one of FailureTransport, FailureHTTPStatus or
// FailureParse:
//
//	outcome, failure := tmdb.Classify(movies, err)
//	if outcome == tmdb.OutcomeEmpty {
//		// success, nothing matched
//	}
package tmdb
