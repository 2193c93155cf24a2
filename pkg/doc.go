// Package pkg provides the core libraries for Codelabs tutorial hosting.
//
// # Overview
//
// Codelabs turns folders of markdown files in a GitHub repository into
// paged HTML tutorials, and ships a weighted selection wheel used to pick
// students or groups during exercises. The pkg directory is organized into:
//
//  1. [markdown] and [transform] - markdown rendering and the article transformer chain
//  2. [articles] - loading, converting and paging articles
//  3. [wheel] - the selection wheel engine
//  4. [integrations] - the GitHub contents API client
//  5. [cache], [errors], [observability], [buildinfo] - shared infrastructure
//
// # Architecture
//
// The data flow for one article:
//
//	GitHub contents API
//	         ↓
//	    [integrations/github] (list folder, download files)
//	         ↓
//	    [articles] (filter and order pages, download in parallel)
//	         ↓
//	    [transform] (markdown, step numbers, images, code, videos, hints)
//	         ↓
//	    []articles.Page, cached in [cache]
//
// # Quick Start
//
//	gh := github.NewClient(github.Repo{Owner: "TroelsMortensen", Name: "Codelabs2", Ref: "master"}, github.Options{})
//	lib := articles.NewLibrary(articles.NewGitHubSource(gh, "Articles"), imageBase)
//	pages, err := lib.Pages(ctx, "Git")
//
// Spin the wheel without a UI:
//
//	e, _ := wheel.NewDefault(4)
//	e.StartSpin()
//	for spinning := true; spinning; {
//	    _, spinning = e.Tick(e.FrameInterval())
//	}
//	fmt.Println(e.CurrentSector().Label)
package pkg
