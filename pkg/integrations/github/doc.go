// Package github reads article content from a GitHub repository.
//
// # Usage
//
//	repo := github.Repo{Owner: "TroelsMortensen", Name: "Codelabs2", Ref: "master"}
//	client := github.NewClient(repo, github.Options{
//	    Token:    os.Getenv("GITHUB_TOKEN"),
//	    Cache:    fileCache,
//	    CacheTTL: time.Hour,
//	})
//
//	folders, err := client.ListFolders(ctx, "Articles", false)
//	files, err := client.ListFiles(ctx, "Articles/Git", false)
//	text, err := client.FetchText(ctx, files[0].DownloadURL, false)
//
// Listings come from the contents API
// (GET /repos/{owner}/{repo}/contents/{path}?ref={ref}); file bodies are
// downloaded from each item's download_url.
//
// # Authentication
//
// A token is optional. Without one GitHub allows 60 requests per hour; a
// cold article load costs one listing plus one request per page.
package github
