// Package aadb is an embedded Go client for the autoantibody reference database.
//
// The client talks to the same store the API server uses (Redis with RedisJSON,
// or an in-process memory store) and runs the same ranking and import rules,
// so tools can load and query data without going through HTTP.
//
//	client, _ := aadb.New(ctx, aadb.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	f, _ := os.Open("records.csv")
//	sum, _ := client.Records().ImportCSV(ctx, f)
//
//	page, _ := client.Records().List(ctx, aadb.ListQuery{Search: "ro52", Limit: 20})
//	hits, _ := client.Records().Advanced(ctx, "lupus", 50, true)
package aadb
