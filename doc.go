// Package tweetkit provides authenticated access to the Twitter REST API.
//
// The package resolves OAuth credentials once per process and reuses them
// for every call, so application code never threads token material through
// explicitly. Credentials are searched in a fixed fallback order: an
// explicitly seeded token, the source paths listed in the TWITTER_PAT
// environment variable, then the token file saved by a prior interactive
// authorization. Newly created tokens are persisted and recorded so future
// processes resolve them without any interaction.
//
// Typical usage:
//
//	client, err := tweetkit.New(ctx)
//	if err != nil {
//		// run tweetkit.CreateToken or the `tweetkit auth create` command first
//	}
//	rows, err := client.Records(ctx, "friends/list.json", url.Values{"screen_name": {"golang"}}, "users")
package tweetkit
