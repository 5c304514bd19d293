package web

import "html/template"

// The three screens, server-rendered. Styling is intentionally
// minimal; score color and badge severity come through as CSS classes
// named after the band classification.
const pageTemplates = `
{{define "layout_head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Starboard Comps</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; }
.badge { padding: 0.2rem 0.6rem; border-radius: 0.4rem; color: #fff; }
.badge-default { background: #16a34a; }
.badge-secondary { background: #ca8a04; }
.badge-destructive { background: #dc2626; }
.score-green { color: #16a34a; }
.score-yellow { color: #ca8a04; }
.score-red { color: #dc2626; }
.card { border: 1px solid #ddd; border-radius: 0.5rem; padding: 1rem; margin: 1rem 0; }
.bar { background: #eee; height: 0.5rem; border-radius: 0.25rem; }
.bar-fill { background: #2563eb; height: 0.5rem; border-radius: 0.25rem; }
.notice { background: #fee2e2; border: 1px solid #dc2626; padding: 0.6rem 1rem; border-radius: 0.4rem; }
label { display: block; margin-top: 0.8rem; }
</style>
</head>
<body>
<header><a href="/"><strong>Starboard</strong></a> &middot; <a href="/search">Search</a></header>
<hr>
{{end}}

{{define "layout_foot"}}</body></html>{{end}}

{{define "landing"}}{{template "layout_head" .}}
<h1>Find Comparable Industrial Properties</h1>
<p>Describe your property and get a ranked list of comparables with
per-property compatibility scores and a four-factor breakdown.</p>
<ol>
<li>Enter your property's location, size, year built and zoning.</li>
<li>The scoring service analyzes candidate properties.</li>
<li>Review compatibility scores and detailed comparisons.</li>
</ol>
<p><a href="/search">Start Property Search</a></p>
{{template "layout_foot" .}}{{end}}

{{define "search"}}{{template "layout_head" .}}
<h1>Property Search</h1>
{{if .Notice}}<p class="notice">{{.Notice}}</p>{{end}}
<form method="post" action="/search">
<label>Latitude *<input name="latitude" value="{{.Draft.Latitude}}" placeholder="34.0522"></label>
<label>Longitude *<input name="longitude" value="{{.Draft.Longitude}}" placeholder="-118.2437"></label>
<label>Address (Optional)<input name="address" value="{{.Draft.Address}}" placeholder="123 Industrial Way, Los Angeles, CA"></label>
<label>Square Feet *<input name="square_feet" value="{{.Draft.SquareFeet}}" placeholder="50000"></label>
<label>Year Built *<input name="year_built" value="{{.Draft.YearBuilt}}" placeholder="2010"></label>
<label>Zoning *
<select name="zoning">
<option value="">Select zoning type</option>
{{$sel := .Draft.Zoning}}
{{range .Zonings}}<option value="{{.}}"{{if eq (printf "%s" .) $sel}} selected{{end}}>{{.}}</option>
{{end}}</select></label>
<label>Number of Comparables
<input type="number" name="num_comparables" min="1" max="10" value="{{.Draft.NumComparables}}"></label>
<p><button type="submit">Find Comparables</button></p>
</form>
{{template "layout_foot" .}}{{end}}

{{define "results"}}{{template "layout_head" .}}
<h1>Comparable Properties for Your Industrial Site</h1>
<p>{{.Count}} Comparables Found</p>

<div class="card">
<h2>Your Subject Property</h2>
<p>Size: <strong>{{.Summary.Size}}</strong> &middot;
Year Built: <strong>{{.Summary.YearBuilt}}</strong> &middot;
Zoning: <strong>{{.Summary.Zoning}}</strong> &middot;
Location: <strong>{{.Summary.Location}}</strong></p>
</div>

{{range .Cards}}
<div class="card">
<h3>{{.Title}}
<span class="badge badge-{{.BadgeVariant}}">{{.MatchLabel}}</span>
<a href="{{.ToggleURL}}">{{if .Expanded}}&#9650;{{else}}&#9660;{{end}}</a></h3>
<p>Property ID: {{.PropertyID}}</p>
<p>{{.Size}} &middot; Built {{.YearBuilt}} &middot; {{.Zoning}} &middot; {{.Location}}</p>
{{if .Expanded}}
<h4>Compatibility Score Breakdown</h4>
{{range .Breakdown}}
<p>{{.Label}} <span class="score-{{.Color}}">{{.Percent}}</span></p>
<div class="bar"><div class="bar-fill" style="width: {{.Fill}}%"></div></div>
{{end}}
{{end}}
</div>
{{end}}

<p><a href="/search">New Search</a></p>
{{template "layout_foot" .}}{{end}}
`

func parseTemplates() (*template.Template, error) {
	return template.New("pages").Parse(pageTemplates)
}
