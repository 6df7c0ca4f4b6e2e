// Package folio is an embedded Go client for a folio content store kept in
// Redis or Valkey. It runs searches, seeds content and manages vote ledgers
// in-process, without going through the HTTP API.
//
//	client, _ := folio.New(ctx,
//	    folio.WithRedis("localhost:6379", ""),
//	    folio.WithBadgerVotes("/var/lib/folio/votes"),
//	)
//	defer client.Close()
//
//	page, _ := client.Search(ctx, folio.SearchQuery{Query: "go", Sort: "date", Limit: 10})
//	tally, _ := client.Tally(ctx, "essay:go-errors")
package folio
